package bean

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-leo/gox/errorx"
	"golang.org/x/exp/slices"
)

type _PropertyInfo struct {
	Label     string
	Type      reflect.Type
	Field     *reflect.StructField
	Tagged    bool
	OmitEmpty bool
	Getter    *_MethodInfo
	Setter    *_MethodInfo
}

func (p *_PropertyInfo) Readable() bool {
	return p.Getter != nil || (p.Field != nil && p.Field.IsExported())
}

func (p *_PropertyInfo) Writeable() bool {
	return p.Setter != nil || (p.Field != nil && p.Field.IsExported())
}

// WriteType is the type a value must have to be stored in the property.
func (p *_PropertyInfo) WriteType() reflect.Type {
	if p.Setter != nil {
		return p.Setter.Type.In(1)
	}
	return p.Type
}

// GetValue reads the property of structVal, calling the getter when there is
// one.
func (p *_PropertyInfo) GetValue(structVal reflect.Value) (reflect.Value, error) {
	if p.Getter != nil {
		recv, ok := receiver(structVal, p.Getter, true)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotReadable, p.Label)
		}
		return p.Getter.InvokeGetter(recv)
	}
	if !p.Readable() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotReadable, p.Label)
	}
	fieldVal := structVal
	for i, index := range p.Field.Index {
		if i > 0 && fieldVal.Kind() == reflect.Pointer {
			if fieldVal.IsNil() {
				return reflect.Value{}, fmt.Errorf("%w: embedded struct of %s", ErrNilNested, p.Label)
			}
			fieldVal = fieldVal.Elem()
		}
		fieldVal = fieldVal.Field(index)
	}
	return fieldVal, nil
}

// SetValue stores a value into the property of structVal. coerce builds the
// value from the type the property accepts. Nil embedded pointers on the way
// to a promoted field are allocated.
func (p *_PropertyInfo) SetValue(structVal reflect.Value, coerce func(typ reflect.Type) (reflect.Value, error)) error {
	if p.Setter != nil {
		recv, ok := receiver(structVal, p.Setter, false)
		if !ok {
			return fmt.Errorf("%w: %s, bean is not addressable", ErrNotWriteable, p.Label)
		}
		inVal, err := coerce(p.WriteType())
		if err != nil {
			return err
		}
		return p.Setter.InvokeSetter(recv, inVal)
	}
	if !p.Writeable() {
		return fmt.Errorf("%w: %s", ErrNotWriteable, p.Label)
	}
	fieldVal := structVal
	for i, index := range p.Field.Index {
		if i > 0 && fieldVal.Kind() == reflect.Pointer {
			if fieldVal.IsNil() {
				if !fieldVal.CanSet() {
					return fmt.Errorf("%w: %s, nil embedded struct", ErrNotWriteable, p.Label)
				}
				fieldVal.Set(reflect.New(fieldVal.Type().Elem()))
			}
			fieldVal = fieldVal.Elem()
		}
		fieldVal = fieldVal.Field(index)
	}
	if !fieldVal.CanSet() {
		return fmt.Errorf("%w: %s, bean is not addressable", ErrNotWriteable, p.Label)
	}
	inVal, err := coerce(fieldVal.Type())
	if err != nil {
		return err
	}
	fieldVal.Set(inVal)
	return nil
}

// receiver returns the value to call m on. Pointer methods of a value that is
// not addressable are called on a copy when copyOK is set.
func receiver(structVal reflect.Value, m *_MethodInfo, copyOK bool) (reflect.Value, bool) {
	if _, ok := structVal.Type().MethodByName(m.Name); ok {
		return structVal, true
	}
	if structVal.CanAddr() {
		return structVal.Addr(), true
	}
	if !copyOK {
		return reflect.Value{}, false
	}
	ptrVal := reflect.New(structVal.Type())
	ptrVal.Elem().Set(structVal)
	return ptrVal, true
}

type _MethodInfo struct {
	reflect.Method
}

// IsGetter
// func(x *Obj) Name() string
// func(x *Obj) Name() (string, error)
func (m *_MethodInfo) IsGetter() bool {
	methodType := m.Type
	if methodType.NumIn() != 1 {
		return false
	}
	return methodType.NumOut() == 1 ||
		(methodType.NumOut() == 2 && methodType.Out(1) == errorx.ErrorType)
}

// IsSetter
// func(x *Obj) SetName(string)
// func(x *Obj) SetName(string) error
func (m *_MethodInfo) IsSetter() bool {
	methodType := m.Type
	if methodType.NumIn() != 2 {
		return false
	}
	return methodType.NumOut() == 0 ||
		(methodType.NumOut() == 1 && methodType.Out(0) == errorx.ErrorType)
}

func (m *_MethodInfo) InvokeGetter(recv reflect.Value) (reflect.Value, error) {
	outValues := recv.MethodByName(m.Name).Call(nil)
	if len(outValues) == 2 {
		if err, ok := outValues[1].Interface().(error); ok && err != nil {
			return reflect.Value{}, err
		}
	}
	return outValues[0], nil
}

func (m *_MethodInfo) InvokeSetter(recv reflect.Value, inVal reflect.Value) error {
	outValues := recv.MethodByName(m.Name).Call([]reflect.Value{inVal})
	if len(outValues) == 0 {
		return nil
	}
	if err, ok := outValues[0].Interface().(error); ok && err != nil {
		return err
	}
	return nil
}

type _BeanInfo struct {
	Type       reflect.Type
	Properties []*_PropertyInfo
	Labels     map[string]*_PropertyInfo
}

func _NewBeanInfo(typ reflect.Type) *_BeanInfo {
	return &_BeanInfo{
		Type:   typ,
		Labels: make(map[string]*_PropertyInfo),
	}
}

func (b *_BeanInfo) Analysis(opts *options) *_BeanInfo {
	getters, setters := b.analysisMethods()
	b.analysisFields(opts, getters, setters)
	b.analysisAccessors(getters, setters)
	return b
}

// analysisMethods collects accessor candidates keyed by the property name
// they imply.
func (b *_BeanInfo) analysisMethods() (map[string]*_MethodInfo, map[string]*_MethodInfo) {
	getters := make(map[string]*_MethodInfo)
	setters := make(map[string]*_MethodInfo)
	ptrType := reflect.PointerTo(b.Type)
	for i := 0; i < ptrType.NumMethod(); i++ {
		method := &_MethodInfo{Method: ptrType.Method(i)}
		// 忽略未导出方法
		if !method.IsExported() {
			continue
		}
		switch {
		case method.IsSetter():
			if name, ok := trimAccessorPrefix(method.Name, "Set"); ok {
				setters[name] = method
			}
		case method.IsGetter():
			if name, ok := trimAccessorPrefix(method.Name, "Get"); ok {
				getters[name] = method
			} else if name, ok := trimAccessorPrefix(method.Name, "Is"); ok && method.Type.Out(0).Kind() == reflect.Bool {
				getters[name] = method
			} else if _, exists := getters[method.Name]; !exists {
				getters[method.Name] = method
			}
		}
	}
	return getters, setters
}

func (b *_BeanInfo) analysisFields(opts *options, getters, setters map[string]*_MethodInfo) {
	depths := make(map[string]int)
	for _, field := range reflect.VisibleFields(b.Type) {
		// 嵌入结构体的字段已经被提升
		if field.Anonymous && indirectType(field.Type).Kind() == reflect.Struct {
			continue
		}
		tagValue := field.Tag.Get(opts.TagKey)
		if tagValue == "-" {
			continue
		}
		field := field
		prop := &_PropertyInfo{Label: field.Name, Type: field.Type, Field: &field}
		if tagValue != "" {
			values := strings.Split(tagValue, ",")
			if values[0] != "" {
				prop.Label = values[0]
				prop.Tagged = true
			}
			prop.OmitEmpty = slices.Contains(values[1:], "omitempty")
		}
		prop.Getter = takeAccessor(getters, field.Name)
		prop.Setter = takeAccessor(setters, field.Name)
		if prop.Getter != nil {
			prop.Type = prop.Getter.Type.Out(0)
		}
		if !field.IsExported() && prop.Getter == nil && prop.Setter == nil {
			continue
		}
		if depth, ok := depths[prop.Label]; ok && depth <= len(field.Index) {
			continue
		}
		depths[prop.Label] = len(field.Index)
		b.add(prop)
	}
}

// analysisAccessors adds the properties that only exist as methods. A bare
// Name() method needs a matching SetName to count as a getter.
func (b *_BeanInfo) analysisAccessors(getters, setters map[string]*_MethodInfo) {
	fields := len(b.Properties)
	for name, setter := range setters {
		prop := &_PropertyInfo{Label: name, Type: setter.Type.In(1), Setter: setter}
		if getter, ok := getters[name]; ok {
			prop.Getter = getter
			prop.Type = getter.Type.Out(0)
			delete(getters, name)
		}
		b.add(prop)
	}
	for name, getter := range getters {
		if getter.Name == name {
			continue
		}
		b.add(&_PropertyInfo{Label: name, Type: getter.Type.Out(0), Getter: getter})
	}
	methodProps := b.Properties[fields:]
	slices.SortFunc(methodProps, func(a, b *_PropertyInfo) int {
		return strings.Compare(a.Label, b.Label)
	})
}

func (b *_BeanInfo) add(prop *_PropertyInfo) {
	if old, ok := b.Labels[prop.Label]; ok {
		index := slices.Index(b.Properties, old)
		b.Properties[index] = prop
	} else {
		b.Properties = append(b.Properties, prop)
	}
	b.Labels[prop.Label] = prop
}

// FindProperty matches the label exactly first, then ignoring case.
func (b *_BeanInfo) FindProperty(label string) *_PropertyInfo {
	if prop, ok := b.Labels[label]; ok {
		return prop
	}
	for _, prop := range b.Properties {
		if strings.EqualFold(prop.Label, label) {
			return prop
		}
	}
	return nil
}

func takeAccessor(methods map[string]*_MethodInfo, fieldName string) *_MethodInfo {
	for name, method := range methods {
		if strings.EqualFold(name, fieldName) {
			delete(methods, name)
			return method
		}
	}
	return nil
}

// trimAccessorPrefix returns the property name of an accessor, "GetName" ->
// "Name". The rest must start with an upper case letter.
func trimAccessorPrefix(methodName, prefix string) (string, bool) {
	name, ok := strings.CutPrefix(methodName, prefix)
	if !ok || name == "" {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return name, unicode.IsUpper(r)
}

func indirectType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

func _CachedBeanInfo(typ reflect.Type, opts *options) *_BeanInfo {
	val, _ := beanCache.LoadOrStore(opts.TagKey, &sync.Map{})
	taggedBeanCache := val.(*sync.Map)
	if info, ok := taggedBeanCache.Load(typ); ok {
		return info.(*_BeanInfo)
	}
	info, _ := taggedBeanCache.LoadOrStore(typ, _NewBeanInfo(typ).Analysis(opts))
	return info.(*_BeanInfo)
}

var beanCache sync.Map
