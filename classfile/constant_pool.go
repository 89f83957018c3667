package classfile

import (
	"fmt"
	"strconv"
	"strings"
)

// ConstantPoolEntry is one parsed constant. The set of implementations is
// closed: every tag defined by the format has exactly one struct here, and
// consumers switch exhaustively so a new tag cannot be mishandled silently.
type ConstantPoolEntry interface {
	Tag() ConstantTag
	isConstantPoolEntry()
}

type ConstantUtf8Info struct {
	Value string
}

type ConstantIntegerInfo struct {
	Value int32
}

type ConstantFloatInfo struct {
	Value float32
}

type ConstantLongInfo struct {
	Value int64
}

type ConstantDoubleInfo struct {
	Value float64
}

type ConstantClassInfo struct {
	NameIndex uint16
}

type ConstantStringInfo struct {
	StringIndex uint16
}

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantModuleInfo struct {
	NameIndex uint16
}

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantUtf8Info) Tag() ConstantTag               { return ConstantUtf8 }
func (c *ConstantIntegerInfo) Tag() ConstantTag            { return ConstantInteger }
func (c *ConstantFloatInfo) Tag() ConstantTag              { return ConstantFloat }
func (c *ConstantLongInfo) Tag() ConstantTag               { return ConstantLong }
func (c *ConstantDoubleInfo) Tag() ConstantTag             { return ConstantDouble }
func (c *ConstantClassInfo) Tag() ConstantTag              { return ConstantClass }
func (c *ConstantStringInfo) Tag() ConstantTag             { return ConstantString }
func (c *ConstantFieldrefInfo) Tag() ConstantTag           { return ConstantFieldref }
func (c *ConstantMethodrefInfo) Tag() ConstantTag          { return ConstantMethodref }
func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }
func (c *ConstantNameAndTypeInfo) Tag() ConstantTag        { return ConstantNameAndType }
func (c *ConstantMethodHandleInfo) Tag() ConstantTag       { return ConstantMethodHandle }
func (c *ConstantMethodTypeInfo) Tag() ConstantTag         { return ConstantMethodType }
func (c *ConstantDynamicInfo) Tag() ConstantTag            { return ConstantDynamic }
func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag      { return ConstantInvokeDynamic }
func (c *ConstantModuleInfo) Tag() ConstantTag             { return ConstantModule }
func (c *ConstantPackageInfo) Tag() ConstantTag            { return ConstantPackage }

func (c *ConstantUtf8Info) isConstantPoolEntry()               {}
func (c *ConstantIntegerInfo) isConstantPoolEntry()            {}
func (c *ConstantFloatInfo) isConstantPoolEntry()              {}
func (c *ConstantLongInfo) isConstantPoolEntry()               {}
func (c *ConstantDoubleInfo) isConstantPoolEntry()             {}
func (c *ConstantClassInfo) isConstantPoolEntry()              {}
func (c *ConstantStringInfo) isConstantPoolEntry()             {}
func (c *ConstantFieldrefInfo) isConstantPoolEntry()           {}
func (c *ConstantMethodrefInfo) isConstantPoolEntry()          {}
func (c *ConstantInterfaceMethodrefInfo) isConstantPoolEntry() {}
func (c *ConstantNameAndTypeInfo) isConstantPoolEntry()        {}
func (c *ConstantMethodHandleInfo) isConstantPoolEntry()       {}
func (c *ConstantMethodTypeInfo) isConstantPoolEntry()         {}
func (c *ConstantDynamicInfo) isConstantPoolEntry()            {}
func (c *ConstantInvokeDynamicInfo) isConstantPoolEntry()      {}
func (c *ConstantModuleInfo) isConstantPoolEntry()             {}
func (c *ConstantPackageInfo) isConstantPoolEntry()            {}

// A physical slot is either a live entry or the tombstone that pads out an
// 8-byte constant. There is no third possibility.
type slotKind uint8

const (
	slotLive slotKind = iota
	slotTombstone
)

type physicalSlot struct {
	kind  slotKind
	entry ConstantPoolEntry
}

// ConstantPool is the 1-based table of constants of a single class file.
// Long and Double entries occupy their own slot plus one tombstone slot
// immediately after, mirroring the wire format's index arithmetic. The
// pool is append-only during parsing and read-only afterwards.
type ConstantPool struct {
	slots []physicalSlot
}

func NewConstantPool() *ConstantPool {
	return &ConstantPool{}
}

// Size returns the number of physical slots, tombstones included.
func (cp *ConstantPool) Size() int { return len(cp.slots) }

// Add appends an entry. Long and Double entries consume a second slot.
func (cp *ConstantPool) Add(entry ConstantPoolEntry) {
	cp.slots = append(cp.slots, physicalSlot{kind: slotLive, entry: entry})
	switch entry.(type) {
	case *ConstantLongInfo, *ConstantDoubleInfo:
		cp.slots = append(cp.slots, physicalSlot{kind: slotTombstone})
	}
}

// Get returns the entry at a 1-based index. Index 0, indices past the end,
// and tombstone slots all fail identically: callers never need to tell an
// out-of-range index apart from the dead half of an 8-byte constant.
func (cp *ConstantPool) Get(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp.slots) {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	slot := cp.slots[index-1]
	if slot.kind == slotTombstone {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	return slot.entry, nil
}

// maxResolutionDepth bounds TextOf's reference chasing. The deepest chain
// a well-formed file produces is MethodHandle -> Fieldref -> Class ->
// Utf8, so ten levels leaves generous slack while still rejecting cyclic
// or degenerate pools quickly.
const maxResolutionDepth = 10

// TextOf resolves an entry to its semantic text: Utf8 entries return their
// string, numeric entries their decimal rendering, and symbolic references
// follow their indices recursively.
func (cp *ConstantPool) TextOf(index uint16) (string, error) {
	return cp.textOf(index, 0)
}

func (cp *ConstantPool) textOf(index uint16, depth int) (string, error) {
	if depth > maxResolutionDepth {
		return "", ErrResolutionDepthExceeded
	}
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	switch e := entry.(type) {
	case *ConstantUtf8Info:
		return e.Value, nil
	case *ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value), 10), nil
	case *ConstantFloatInfo:
		return formatFloat(float64(e.Value), 32), nil
	case *ConstantLongInfo:
		return strconv.FormatInt(e.Value, 10), nil
	case *ConstantDoubleInfo:
		return formatFloat(e.Value, 64), nil
	case *ConstantClassInfo:
		return cp.textOf(e.NameIndex, depth+1)
	case *ConstantStringInfo:
		return cp.textOf(e.StringIndex, depth+1)
	case *ConstantFieldrefInfo:
		return cp.memberText(e.ClassIndex, e.NameAndTypeIndex, depth)
	case *ConstantMethodrefInfo:
		return cp.memberText(e.ClassIndex, e.NameAndTypeIndex, depth)
	case *ConstantInterfaceMethodrefInfo:
		return cp.memberText(e.ClassIndex, e.NameAndTypeIndex, depth)
	case *ConstantNameAndTypeInfo:
		return cp.pairText(e.NameIndex, e.DescriptorIndex, depth)
	case *ConstantMethodHandleInfo:
		kindName, err := MethodHandleKindName(uint8(e.ReferenceKind))
		if err != nil {
			return "", err
		}
		target, err := cp.textOf(e.ReferenceIndex, depth+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", kindName, target), nil
	case *ConstantMethodTypeInfo:
		return cp.textOf(e.DescriptorIndex, depth+1)
	case *ConstantDynamicInfo:
		return cp.pairText(e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, depth)
	case *ConstantInvokeDynamicInfo:
		return cp.pairText(e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, depth)
	case *ConstantModuleInfo:
		return cp.textOf(e.NameIndex, depth+1)
	case *ConstantPackageInfo:
		return cp.textOf(e.NameIndex, depth+1)
	default:
		return "", invalidClassData("unhandled constant pool entry tag %d", entry.Tag())
	}
}

// memberText renders "<owner>.<member>" for field and method references.
func (cp *ConstantPool) memberText(classIndex, natIndex uint16, depth int) (string, error) {
	owner, err := cp.textOf(classIndex, depth+1)
	if err != nil {
		return "", err
	}
	member, err := cp.textOf(natIndex, depth+1)
	if err != nil {
		return "", err
	}
	return owner + "." + member, nil
}

// pairText renders "<name>: <descriptor>".
func (cp *ConstantPool) pairText(first, second uint16, depth int) (string, error) {
	name, err := cp.textOf(first, depth+1)
	if err != nil {
		return "", err
	}
	descriptor, err := cp.textOf(second, depth+1)
	if err != nil {
		return "", err
	}
	return name + ": " + descriptor, nil
}

// formatFloat matches the decimal rendering used by the rest of the pool:
// shortest representation that round-trips.
func formatFloat(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}

// DumpEntry renders one entry for diagnostics, showing raw indices next to
// their resolved targets.
func (cp *ConstantPool) DumpEntry(index uint16) (string, error) {
	return cp.dumpEntry(index, 0)
}

func (cp *ConstantPool) dumpEntry(index uint16, depth int) (string, error) {
	if depth > maxResolutionDepth {
		return "", ErrResolutionDepthExceeded
	}
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	ref := func(i uint16) (string, error) { return cp.dumpEntry(i, depth+1) }
	switch e := entry.(type) {
	case *ConstantUtf8Info:
		return fmt.Sprintf("String: %q", e.Value), nil
	case *ConstantIntegerInfo:
		return fmt.Sprintf("Integer: %d", e.Value), nil
	case *ConstantFloatInfo:
		return fmt.Sprintf("Float: %s", formatFloat(float64(e.Value), 32)), nil
	case *ConstantLongInfo:
		return fmt.Sprintf("Long: %d", e.Value), nil
	case *ConstantDoubleInfo:
		return fmt.Sprintf("Double: %s", formatFloat(e.Value, 64)), nil
	case *ConstantClassInfo:
		return cp.dumpRef("ClassReference", e.NameIndex, ref)
	case *ConstantStringInfo:
		return cp.dumpRef("StringReference", e.StringIndex, ref)
	case *ConstantFieldrefInfo:
		return cp.dumpRefPair("FieldReference", e.ClassIndex, e.NameAndTypeIndex, ref)
	case *ConstantMethodrefInfo:
		return cp.dumpRefPair("MethodReference", e.ClassIndex, e.NameAndTypeIndex, ref)
	case *ConstantInterfaceMethodrefInfo:
		return cp.dumpRefPair("InterfaceMethodReference", e.ClassIndex, e.NameAndTypeIndex, ref)
	case *ConstantNameAndTypeInfo:
		return cp.dumpRefPair("NameAndType", e.NameIndex, e.DescriptorIndex, ref)
	case *ConstantMethodHandleInfo:
		kindName, err := MethodHandleKindName(uint8(e.ReferenceKind))
		if err != nil {
			return "", err
		}
		target, err := ref(e.ReferenceIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MethodHandle: %d, %d => (%s), (%s)",
			e.ReferenceKind, e.ReferenceIndex, kindName, target), nil
	case *ConstantMethodTypeInfo:
		return cp.dumpRef("MethodType", e.DescriptorIndex, ref)
	case *ConstantDynamicInfo:
		return cp.dumpRefPair("Dynamic", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, ref)
	case *ConstantInvokeDynamicInfo:
		return cp.dumpRefPair("InvokeDynamic", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, ref)
	case *ConstantModuleInfo:
		return cp.dumpRef("ModuleInfo", e.NameIndex, ref)
	case *ConstantPackageInfo:
		return cp.dumpRef("PackageInfo", e.NameIndex, ref)
	default:
		return "", invalidClassData("unhandled constant pool entry tag %d", entry.Tag())
	}
}

func (cp *ConstantPool) dumpRef(kind string, index uint16, ref func(uint16) (string, error)) (string, error) {
	target, err := ref(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d => (%s)", kind, index, target), nil
}

func (cp *ConstantPool) dumpRefPair(kind string, first, second uint16, ref func(uint16) (string, error)) (string, error) {
	a, err := ref(first)
	if err != nil {
		return "", err
	}
	b, err := ref(second)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d, %d => (%s), (%s)", kind, first, second, a, b), nil
}

// String dumps the whole pool, one line per physical slot. Tombstone and
// unresolvable slots are annotated rather than failing the dump.
func (cp *ConstantPool) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Constant pool: (size: %d)\n", len(cp.slots))
	for i := range cp.slots {
		index := uint16(i + 1)
		if cp.slots[i].kind == slotTombstone {
			fmt.Fprintf(&sb, "    %d, <tombstone>\n", index)
			continue
		}
		text, err := cp.DumpEntry(index)
		if err != nil {
			fmt.Fprintf(&sb, "    %d, <unresolvable: %s>\n", index, err)
			continue
		}
		fmt.Fprintf(&sb, "    %d, %s\n", index, text)
	}
	return sb.String()
}
