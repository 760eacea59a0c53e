package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/metagen/internal/model"
)

func render(t *testing.T, tm model.TypeModel) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, File(tm).Render(&buf))
	return buf.String()
}

func stringRef() model.TypeRef {
	return model.TypeRef{Kind: model.RefBasic, Name: "string"}
}

func userModel() model.TypeModel {
	return model.TypeModel{
		Name:          "User",
		QualifiedName: "example.com/fixture.User",
		PkgPath:       "example.com/fixture",
		PkgName:       "fixture",
		Visibility:    model.VisibilityExported,
		Properties: []model.PropertyModel{
			{
				Name: "Email", Type: stringRef(), HasGetter: true, HasSetter: true,
				GetterName: "Email", SetterName: "SetEmail",
			},
		},
		Fields: []model.FieldModel{
			{Name: "Name", Type: stringRef()},
			{Name: "ID", Type: stringRef(), ReadOnly: true},
			{
				Name: "Max", Type: model.TypeRef{Kind: model.RefBasic, Name: "int"},
				Static: true, ReadOnly: true, Const: true, ConstLiteral: "100",
			},
		},
		Methods: []model.MethodModel{
			{
				Name: "Greet", ReturnType: stringRef(), Results: []model.TypeRef{stringRef()},
				Params: []model.ParameterModel{{Name: "prefix", Type: stringRef()}},
			},
			{Name: "Reset", Void: true},
			{
				Name: "Tags",
				Params: []model.ParameterModel{{
					Name: "extra", Type: model.TypeRef{Kind: model.RefSlice, Elem: ptr(stringRef())},
					Variadic: true, HasDefault: true, DefaultLiteral: "nil", Nullable: true,
				}},
				Results:    []model.TypeRef{{Kind: model.RefSlice, Elem: ptr(stringRef())}},
				ReturnType: model.TypeRef{Kind: model.RefSlice, Elem: ptr(stringRef())},
			},
		},
		Constructors: []model.ConstructorModel{
			{
				Name: "NewUser", ReturnsPointer: true,
				Params: []model.ParameterModel{{Name: "name", Type: stringRef()}},
			},
			{
				Name: "NewUserFromParts", ReturnsError: true,
				Params: []model.ParameterModel{
					{Name: "name", Type: stringRef()},
					{Name: "email", Type: stringRef()},
				},
			},
		},
	}
}

func ptr(r model.TypeRef) *model.TypeRef { return &r }

func TestFileHeaderAndMetadata(t *testing.T) {
	src := render(t, userModel())

	require.Contains(t, src, "Code generated by metagen. DO NOT EDIT.")
	require.Contains(t, src, "package fixture")
	require.Contains(t, src, "var UserMeta = meta.Type{")
	require.Contains(t, src, `Name: "User"`)
	require.Contains(t, src, `Package: "example.com/fixture"`)
	require.Contains(t, src, `"github.com/cmmoran/metagen/pkg/meta"`)
}

func TestGetDispatch(t *testing.T) {
	src := render(t, userModel())

	require.Contains(t, src, "func (x *User) GetPropertyValue(name string) (any, error)")
	require.Contains(t, src, `case "Email":`)
	require.Contains(t, src, "return x.Email(), nil")
	require.Contains(t, src, `case "Name":`)
	require.Contains(t, src, "return x.Name, nil")
	// the const literal is embedded verbatim, never read through the type
	require.Contains(t, src, `case "Max":`)
	require.Contains(t, src, "return 100, nil")
	require.Contains(t, src, `has no readable property %q`)
}

func TestSetDispatch(t *testing.T) {
	src := render(t, userModel())

	require.Contains(t, src, "func (x *User) SetPropertyValue(name string, value any) error")
	require.Contains(t, src, "x.SetEmail(value.(string))")
	require.Contains(t, src, "x.Name = value.(string)")

	// read-only and const members never gain a write path
	require.NotContains(t, src, "x.ID =")
	require.NotContains(t, src, "x.Max")
}

func TestInvokeDispatch(t *testing.T) {
	src := render(t, userModel())

	require.Contains(t, src, "func (x *User) InvokeMethod(name string, args ...any) ([]any, error)")
	require.Contains(t, src, `case "Greet":`)
	require.Contains(t, src, "if len(args) != 1 {")
	require.Contains(t, src, "r0 := x.Greet(args[0].(string))")
	require.Contains(t, src, "return []any{r0}, nil")

	// void methods return an empty result set
	require.Contains(t, src, `case "Reset":`)
	require.Contains(t, src, "x.Reset()")

	// the variadic tail is always omitted from dispatch
	require.Contains(t, src, `case "Tags":`)
	require.Contains(t, src, "if len(args) != 0 {")
	require.Contains(t, src, "r0 := x.Tags()")
}

func TestCreateDispatch(t *testing.T) {
	src := render(t, userModel())

	require.Contains(t, src, "func CreateUserInstance(args ...any) (*User, error)")
	require.Contains(t, src, "switch len(args) {")
	require.Contains(t, src, "return NewUser(args[0].(string)), nil")
	// the value-returning factory is normalized to a pointer result
	require.Contains(t, src, "v, err := NewUserFromParts(args[0].(string), args[1].(string))")
	require.Contains(t, src, "return &v, nil")
	require.Contains(t, src, `has no constructor taking %d arguments`)
}

func TestExtensionMethodDispatch(t *testing.T) {
	tm := userModel()
	tm.Methods = append(tm.Methods, model.MethodModel{
		Name: "UserRename", Static: true, Extension: true, PointerRecv: true, Void: true,
		Params: []model.ParameterModel{{Name: "name", Type: stringRef()}},
	})
	src := render(t, tm)

	require.Contains(t, src, "UserRename(x, args[0].(string))")
}

func TestDegenerateDispatches(t *testing.T) {
	tm := model.TypeModel{
		Name:    "Empty",
		PkgPath: "example.com/fixture",
		PkgName: "fixture",
	}
	src := render(t, tm)

	require.Contains(t, src, "var EmptyMeta = meta.Type{")
	require.Contains(t, src, `has no readable property %q`)
	require.Contains(t, src, `has no writable property %q`)
	require.Contains(t, src, `has no method %q`)
	require.Contains(t, src, `has no constructor taking %d arguments`)
	require.NotContains(t, src, "switch")
}

func TestGenericTypeEmission(t *testing.T) {
	tm := model.TypeModel{
		Name:       "Box",
		PkgPath:    "example.com/fixture",
		PkgName:    "fixture",
		TypeParams: []model.TypeParam{{Name: "T", Constraint: "any"}},
		Fields: []model.FieldModel{
			{Name: "Value", Type: model.TypeRef{Kind: model.RefBasic, Name: "T"}},
		},
	}
	src := render(t, tm)

	// a var cannot carry type parameters, so the metadata becomes a function
	require.Contains(t, src, "func BoxMeta[T any]() meta.Type")
	require.Contains(t, src, "func (x *Box[T]) GetPropertyValue(name string) (any, error)")
	require.Contains(t, src, "func (x *Box[T]) SetPropertyValue(name string, value any) error")
	require.Contains(t, src, "func CreateBoxInstance[T any](args ...any) (*Box[T], error)")
	require.Contains(t, src, "x.Value = value.(T)")
}

func TestExternalTypeImports(t *testing.T) {
	tm := model.TypeModel{
		Name:    "Order",
		PkgPath: "example.com/fixture",
		PkgName: "fixture",
		Fields: []model.FieldModel{
			{Name: "Ref", Type: model.TypeRef{
				Kind: model.RefNamed, Name: "Thing", PkgPath: "example.com/other",
			}},
		},
		Imports: []model.Import{{Path: "example.com/other", Name: "other"}},
	}
	src := render(t, tm)

	require.Contains(t, src, `"example.com/other"`)
	require.Contains(t, src, "x.Ref = value.(other.Thing)")
}
