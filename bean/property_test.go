package bean_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-leo/beanutils/bean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Address struct {
	Street string
	City   string `bean:"town"`
}

type Person struct {
	Name     string
	Age      int
	Height   float64 `bean:",omitempty"`
	Email    string  `bean:"-"`
	Address  *Address
	Tags     []string
	Scores   [3]int
	Attrs    map[string]string
	Meta     map[string]any
	Contacts []Address
	Homes    map[string]Address
	Ranks    map[int]string
	nickname string
}

func (p *Person) Nickname() string {
	return p.nickname
}

func (p *Person) SetNickname(nickname string) {
	p.nickname = strings.TrimSpace(nickname)
}

func (p *Person) GetDisplayName() (string, error) {
	if p.Name == "" {
		return "", errors.New("no name")
	}
	return p.Name + " (" + p.nickname + ")", nil
}

type Audit struct {
	CreatedBy string
}

type Account struct {
	*Audit
	ID string `bean:"id"`
}

func newPerson() *Person {
	return &Person{
		Name:     "Ada",
		Age:      36,
		Address:  &Address{Street: "Baker", City: "London"},
		Tags:     []string{"math", "code"},
		Scores:   [3]int{1, 2, 3},
		Attrs:    map[string]string{"color": "blue"},
		Meta:     map[string]any{"inner": map[string]any{"x": 1}},
		Contacts: []Address{{Street: "Elm", City: "Paris"}},
		Ranks:    map[int]string{1: "first"},
		nickname: "ace",
	}
}

func TestGetProperty(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	tests := []struct {
		expr string
		want any
	}{
		{expr: "Name", want: "Ada"},
		{expr: "name", want: "Ada"},
		{expr: "Address.town", want: "London"},
		{expr: "Tags[1]", want: "code"},
		{expr: "Scores[2]", want: 3},
		{expr: "Attrs(color)", want: "blue"},
		{expr: "Attrs(missing)", want: nil},
		{expr: "Contacts[0].town", want: "Paris"},
		{expr: "Meta(inner).x", want: 1},
		{expr: "Ranks(1)", want: "first"},
		{expr: "nickname", want: "ace"},
		{expr: "DisplayName", want: "Ada (ace)"},
	}
	for _, test := range tests {
		v, err := p.GetProperty(person, test.expr)
		if assert.NoError(t, err, test.expr) {
			assert.Equal(t, test.want, v, test.expr)
		}
	}

	// struct values can be read
	v, err := p.GetProperty(*person, "Address.Street")
	assert.NoError(t, err)
	assert.Equal(t, "Baker", v)
}

func TestGetPropertyErrors(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()
	person.Address = nil

	tests := []struct {
		expr string
		err  error
	}{
		{expr: "", err: bean.ErrInvalidExpression},
		{expr: "Tags[x]", err: bean.ErrInvalidExpression},
		{expr: "Missing", err: bean.ErrNoSuchProperty},
		{expr: "Email", err: bean.ErrNoSuchProperty},
		{expr: "Address.Street", err: bean.ErrNilNested},
		{expr: "Tags[5]", err: bean.ErrIndexOutOfRange},
		{expr: "Name[0]", err: bean.ErrNotIndexed},
		{expr: "Name(x)", err: bean.ErrNotMapped},
	}
	for _, test := range tests {
		_, err := p.GetProperty(person, test.expr)
		assert.ErrorIs(t, err, test.err, test.expr)
	}

	_, err := p.GetProperty(nil, "Name")
	assert.ErrorIs(t, err, bean.ErrNilBean)

	_, err = p.GetProperty((*Person)(nil), "Name")
	assert.ErrorIs(t, err, bean.ErrNilBean)

	_, err = p.GetProperty(&Person{}, "DisplayName")
	assert.EqualError(t, err, "no name")
}

func TestGetSimpleIndexedMappedProperty(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	v, err := p.GetSimpleProperty(person, "Age")
	assert.NoError(t, err)
	assert.Equal(t, 36, v)

	_, err = p.GetSimpleProperty(person, "Address.Street")
	assert.ErrorIs(t, err, bean.ErrInvalidExpression)

	v, err = p.GetIndexedProperty(person, "Tags", 0)
	assert.NoError(t, err)
	assert.Equal(t, "math", v)

	_, err = p.GetIndexedProperty(person, "Tags", -1)
	assert.ErrorIs(t, err, bean.ErrIndexOutOfRange)

	v, err = p.GetMappedProperty(person, "Attrs", "color")
	assert.NoError(t, err)
	assert.Equal(t, "blue", v)
}

func TestSetProperty(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := &Person{}

	require.NoError(t, p.SetProperty(person, "Name", "Grace"))
	require.NoError(t, p.SetProperty(person, "age", 85))
	require.NoError(t, p.SetProperty(person, "Address.Street", "Main"))
	require.NoError(t, p.SetProperty(person, "Address.town", "Arlington"))
	require.NoError(t, p.SetProperty(person, "Attrs(size)", "L"))
	require.NoError(t, p.SetProperty(person, "Scores[1]", 7))
	require.NoError(t, p.SetProperty(person, "Meta(inner).y", 2))
	require.NoError(t, p.SetProperty(person, "Homes(main).Street", "Oak"))
	require.NoError(t, p.SetProperty(person, "Ranks(2)", "second"))
	require.NoError(t, p.SetProperty(person, "nickname", "  amazing  "))

	assert.Equal(t, "Grace", person.Name)
	assert.Equal(t, 85, person.Age)
	assert.Equal(t, &Address{Street: "Main", City: "Arlington"}, person.Address)
	assert.Equal(t, map[string]string{"size": "L"}, person.Attrs)
	assert.Equal(t, [3]int{0, 7, 0}, person.Scores)
	assert.Equal(t, map[string]any{"inner": map[string]any{"y": 2}}, person.Meta)
	assert.Equal(t, map[string]Address{"main": {Street: "Oak"}}, person.Homes)
	assert.Equal(t, map[int]string{2: "second"}, person.Ranks)
	assert.Equal(t, "amazing", person.Nickname())

	person.Contacts = []Address{{}}
	require.NoError(t, p.SetProperty(person, "Contacts[0].Street", "Elm"))
	assert.Equal(t, "Elm", person.Contacts[0].Street)

	require.NoError(t, p.SetIndexedProperty(person, "Contacts", 0, Address{City: "Rome"}))
	assert.Equal(t, Address{City: "Rome"}, person.Contacts[0])

	require.NoError(t, p.SetMappedProperty(person, "Attrs", "size", "XL"))
	assert.Equal(t, "XL", person.Attrs["size"])

	require.NoError(t, p.SetSimpleProperty(person, "Tags", []string{"a"}))
	assert.Equal(t, []string{"a"}, person.Tags)
}

func TestSetPropertyErrors(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	assert.ErrorIs(t, p.SetProperty(person, "Age", "36"), bean.ErrTypeMismatch)
	assert.ErrorIs(t, p.SetProperty(person, "DisplayName", "x"), bean.ErrNotWriteable)
	assert.ErrorIs(t, p.SetProperty(*person, "Name", "x"), bean.ErrNotWriteable)
	assert.ErrorIs(t, p.SetProperty(person, "Missing", "x"), bean.ErrNoSuchProperty)
	assert.ErrorIs(t, p.SetProperty(person, "Tags[9]", "x"), bean.ErrIndexOutOfRange)
	assert.ErrorIs(t, p.SetProperty(person, "Age[0]", 1), bean.ErrNotIndexed)
	assert.ErrorIs(t, p.SetProperty(person, "Age(k)", 1), bean.ErrNotMapped)
	assert.ErrorIs(t, p.SetProperty(nil, "Age", 1), bean.ErrNilBean)
	assert.ErrorIs(t, p.SetSimpleProperty(person, "Address.Street", "x"), bean.ErrInvalidExpression)
}

func TestEmbeddedProperty(t *testing.T) {
	p := bean.NewPropertyUtils()
	account := &Account{ID: "a-1"}

	_, err := p.GetProperty(account, "CreatedBy")
	assert.ErrorIs(t, err, bean.ErrNilNested)

	require.NoError(t, p.SetProperty(account, "CreatedBy", "root"))
	require.NotNil(t, account.Audit)
	assert.Equal(t, "root", account.CreatedBy)

	v, err := p.GetProperty(account, "id")
	assert.NoError(t, err)
	assert.Equal(t, "a-1", v)
}

func TestPropertyType(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	typ, err := p.GetPropertyType(person, "Address")
	assert.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(&Address{}), typ)

	typ, err = p.GetPropertyType(person, "Tags[0]")
	assert.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), typ)

	typ, err = p.GetPropertyType(person, "Meta(inner)")
	assert.NoError(t, err)
	assert.Equal(t, reflect.TypeOf((*any)(nil)).Elem(), typ)

	typ, err = p.GetPropertyType(person, "nickname")
	assert.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), typ)
}

func TestReadableWriteable(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	assert.True(t, p.IsReadable(person, "Name"))
	assert.True(t, p.IsReadable(person, "DisplayName"))
	assert.True(t, p.IsReadable(person, "Address.Street"))
	assert.True(t, p.IsReadable(person, "Attrs(anything)"))
	assert.False(t, p.IsReadable(person, "Missing"))
	assert.False(t, p.IsReadable(person, "Email"))

	assert.True(t, p.IsWriteable(person, "Name"))
	assert.True(t, p.IsWriteable(person, "nickname"))
	assert.False(t, p.IsWriteable(person, "DisplayName"))
	assert.False(t, p.IsWriteable(*person, "Name"))

	person.Address = nil
	assert.False(t, p.IsReadable(person, "Address.Street"))
	assert.False(t, p.IsWriteable(nil, "Name"))
}

func TestPropertyDescribe(t *testing.T) {
	p := bean.NewPropertyUtils()
	person := newPerson()

	values, err := p.Describe(person)
	require.NoError(t, err)
	assert.Equal(t, "Ada", values["Name"])
	assert.Equal(t, "ace", values["nickname"])
	assert.Equal(t, "Ada (ace)", values["DisplayName"])
	assert.NotContains(t, values, "Height")
	assert.NotContains(t, values, "Email")

	person.Height = 1.7
	values, err = p.Describe(*person)
	require.NoError(t, err)
	assert.Equal(t, 1.7, values["Height"])

	values, err = p.Describe(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, values)

	_, err = p.Describe(42)
	assert.ErrorIs(t, err, bean.ErrNotReadable)
}

func TestPropertyCopyProperties(t *testing.T) {
	p := bean.NewPropertyUtils()
	type summary struct {
		Name    string
		Age     string
		Tags    []string
		Address *Address
	}
	dest := &summary{Age: "unknown"}
	require.NoError(t, p.CopyProperties(dest, newPerson()))
	assert.Equal(t, "Ada", dest.Name)
	assert.Equal(t, "unknown", dest.Age)
	assert.Equal(t, []string{"math", "code"}, dest.Tags)
	assert.Equal(t, "Baker", dest.Address.Street)

	values := map[string]any{}
	require.NoError(t, p.CopyProperties(values, &summary{Name: "x"}))
	assert.Equal(t, "x", values["Name"])

	assert.ErrorIs(t, p.CopyProperties(nil, dest), bean.ErrNilBean)
}

func TestTagKey(t *testing.T) {
	type row struct {
		ID   int    `db:"id"`
		Name string `db:"name"`
	}
	p := bean.NewPropertyUtils(bean.TagKey("db"))
	r := &row{}
	require.NoError(t, p.SetProperty(r, "id", 7))
	v, err := p.GetProperty(r, "name")
	assert.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, 7, r.ID)
}
