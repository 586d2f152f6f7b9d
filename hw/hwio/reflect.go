package hwio

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bankReg describes a register found in a bank structure by bankGetRegs.
type bankReg struct {
	offset uint16
	regPtr any // *Mem or *Reg8
}

type tagOpts map[string]string

func parseTag(tag string) tagOpts {
	opts := make(tagOpts)
	for _, kv := range strings.Split(tag, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, _ := strings.Cut(kv, "=")
		opts[k] = v
	}
	return opts
}

func (o tagOpts) has(k string) bool {
	_, ok := o[k]
	return ok
}

func (o tagOpts) uint(k string, def uint64) (uint64, error) {
	s, ok := o[k]
	if !ok || s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", k, s, err)
	}
	return v, nil
}

// callback returns the method named after the option value, or after
// prefix+FIELDNAME when the option has no value. It returns an invalid
// reflect.Value if the option is absent.
func (o tagOpts) callback(obj reflect.Value, opt, prefix, field string) (reflect.Value, error) {
	name, ok := o[opt]
	if !ok {
		return reflect.Value{}, nil
	}
	if name == "" {
		name = prefix + strings.ToUpper(field)
	}
	m := obj.MethodByName(name)
	if !m.IsValid() {
		return m, fmt.Errorf("%s: missing method %s", field, name)
	}
	return m, nil
}

func setCallback[T any](dst *T, m reflect.Value, field string) error {
	if !m.IsValid() {
		return nil
	}
	fn, ok := m.Interface().(T)
	if !ok {
		return fmt.Errorf("%s: callback has type %s, want %T", field, m.Type(), *dst)
	}
	*dst = fn
	return nil
}

func rwflags(o tagOpts) RWFlags {
	var f RWFlags
	if o.has("readonly") {
		f |= ReadOnlyFlag
	}
	if o.has("writeonly") {
		f |= WriteOnlyFlag
	}
	return f
}

// InitRegs initializes every Mem and Reg8 field of the structure
// pointed to by data, according to its "hwio" struct tag:
//
//	offset=0x12   offset within the bank (fields without it are not mapped
//	              by MapBank, but are still initialized)
//	bank=N        bank number, default 0
//	reset=0x12    Reg8 initial value
//	rwmask=0xF0   Reg8 writable bits, default 0xFF
//	size=0x800    Mem buffer size (allocated if Data is nil)
//	vsize=0x2000  Mem mapped size, default size
//	readonly      writes are rejected
//	writeonly     Reg8 reads are rejected
//	rcb[=Name]    read callback, default ReadFIELD
//	wcb[=Name]    write callback, default WriteFIELD
//	pcb[=Name]    peek callback, default PeekFIELD
func InitRegs(data any) error {
	obj := reflect.ValueOf(data)
	if obj.Kind() != reflect.Pointer || obj.Elem().Kind() != reflect.Struct {
		return errors.New("InitRegs: expecting a pointer to struct")
	}

	st := obj.Elem()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Type().Field(i)
		tag, ok := sf.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)

		var err error
		switch ptr := st.Field(i).Addr().Interface().(type) {
		case *Reg8:
			err = initReg8(obj, sf.Name, ptr, opts)
		case *Mem:
			err = initMem(obj, sf.Name, ptr, opts)
		default:
			err = fmt.Errorf("%s: unsupported hwio type %s", sf.Name, sf.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(data any) {
	if err := InitRegs(data); err != nil {
		panic(err)
	}
}

func initReg8(obj reflect.Value, name string, reg *Reg8, opts tagOpts) error {
	reset, err := opts.uint("reset", 0)
	if err != nil {
		return err
	}
	rwmask, err := opts.uint("rwmask", 0xFF)
	if err != nil {
		return err
	}
	reg.Name = name
	reg.Value = uint8(reset)
	reg.RoMask = ^uint8(rwmask)
	reg.Flags = rwflags(opts)

	rcb, err := opts.callback(obj, "rcb", "Read", name)
	if err != nil {
		return err
	}
	wcb, err := opts.callback(obj, "wcb", "Write", name)
	if err != nil {
		return err
	}
	pcb, err := opts.callback(obj, "pcb", "Peek", name)
	if err != nil {
		return err
	}
	return errors.Join(
		setCallback(&reg.ReadCb, rcb, name),
		setCallback(&reg.WriteCb, wcb, name),
		setCallback(&reg.PeekCb, pcb, name),
	)
}

func initMem(obj reflect.Value, name string, mem *Mem, opts tagOpts) error {
	size, err := opts.uint("size", uint64(len(mem.Data)))
	if err != nil {
		return err
	}
	vsize, err := opts.uint("vsize", size)
	if err != nil {
		return err
	}
	if size == 0 {
		return fmt.Errorf("%s: memory size not specified", name)
	}
	mem.Name = name
	if mem.Data == nil {
		mem.Data = make([]byte, size)
	}
	mem.VSize = int(vsize)
	if opts.has("readonly") {
		mem.Flags |= MemFlag8ReadOnly
	}
	wcb, err := opts.callback(obj, "wcb", "Write", name)
	if err != nil {
		return err
	}
	return setCallback(&mem.WriteCb, wcb, name)
}

// bankGetRegs returns the registers of bank number bankNum declared in the
// structure pointed to by bank.
func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	obj := reflect.ValueOf(bank)
	if obj.Kind() != reflect.Pointer || obj.Elem().Kind() != reflect.Struct {
		return nil, errors.New("bankGetRegs: expecting a pointer to struct")
	}

	var regs []bankReg
	st := obj.Elem()
	for i := 0; i < st.NumField(); i++ {
		tag, ok := st.Type().Field(i).Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)
		if !opts.has("offset") {
			continue
		}
		num, err := opts.uint("bank", 0)
		if err != nil {
			return nil, err
		}
		if int(num) != bankNum {
			continue
		}
		off, err := opts.uint("offset", 0)
		if err != nil {
			return nil, err
		}
		regs = append(regs, bankReg{
			offset: uint16(off),
			regPtr: st.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}

// MapBank maps every register of the given bank number, declared in the
// structure pointed to by bank, at addr plus the register offset. Registers
// must have been initialized with InitRegs.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}
