package darwin

import (
	"fmt"
	"reflect"
)

// Gene is the atomic unit of a candidate's representation. It holds a single
// value whose type is fixed when the gene is created.
type Gene struct {
	value any
	typ   reflect.Type
}

// NewGene creates a gene holding v. The gene only ever accepts values of type T.
func NewGene[T any](v T) *Gene {
	return &Gene{value: v, typ: reflect.TypeFor[T]()}
}

// GeneValue returns the gene's value as a T. The boolean is false if the gene is
// nil or holds something that is not a T.
func GeneValue[T any](g *Gene) (T, bool) {
	var zero T
	if g == nil {
		return zero, false
	}
	v, ok := g.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Value returns the raw value stored in the gene.
func (g *Gene) Value() any {
	return g.value
}

// Type returns the value type fixed at creation.
func (g *Gene) Type() reflect.Type {
	return g.typ
}

// Set replaces the gene's value. Values not assignable to the gene's type are
// rejected with ErrGeneType and the gene is left unchanged.
func (g *Gene) Set(v any) error {
	if v == nil {
		switch g.typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			g.value = reflect.Zero(g.typ).Interface()
			return nil
		}
		return fmt.Errorf("%w: nil is not a %s", ErrGeneType, g.typ)
	}
	if vt := reflect.TypeOf(v); !vt.AssignableTo(g.typ) {
		return fmt.Errorf("%w: %s is not a %s", ErrGeneType, vt, g.typ)
	}
	g.value = v
	return nil
}

// Clone returns a deep copy of the gene. Pointers, slices, maps, arrays and
// the exported fields of structs are copied recursively. Unexported struct
// fields, channels and funcs are shared with the original.
func (g *Gene) Clone() *Gene {
	if g.value == nil {
		return &Gene{typ: g.typ}
	}
	v := deepCopy(reflect.ValueOf(g.value), make(map[visit]reflect.Value))
	return &Gene{value: v.Interface(), typ: g.typ}
}

// visit identifies a pointer already copied, so shared and cyclic references
// keep their shape in the copy.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

func deepCopy(v reflect.Value, seen map[visit]reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		key := visit{v.Pointer(), v.Type()}
		if c, ok := seen[key]; ok {
			return c
		}
		c := reflect.New(v.Type().Elem())
		seen[key] = c
		c.Elem().Set(deepCopy(v.Elem(), seen))
		return c
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(deepCopy(v.Elem(), seen))
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			c.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return c
	case reflect.Array:
		c := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			c.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return c
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		for iter := v.MapRange(); iter.Next(); {
			c.SetMapIndex(iter.Key(), deepCopy(iter.Value(), seen))
		}
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				c.Field(i).Set(deepCopy(v.Field(i), seen))
			}
		}
		return c
	default:
		return v
	}
}

// String returns a string representation of the Gene.
func (g *Gene) String() string {
	return fmt.Sprintf("Gene(%v)", g.value)
}
