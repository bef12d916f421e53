package validation

var vec3 = Schema{
	{Name: "x", Kind: Number, Required: true},
	{Name: "y", Kind: Number, Required: true},
	{Name: "z", Kind: Number, Required: true},
}

var sceneObject = Schema{
	{Name: "id", Kind: String, Required: true},
	{Name: "type", Kind: String, Required: true},
	{Name: "color", Kind: String, Required: true},
	{Name: "position", Kind: Object, Required: true, Elem: vec3},
	{Name: "rotation", Kind: Object, Required: true, Elem: vec3},
	{Name: "scale", Kind: Object, Required: true, Elem: vec3},
}

// Register covers POST /api/users/register.
var Register = Schema{
	{Name: "username", Kind: String, Required: true, MinLen: 3, MaxLen: 30},
	{Name: "email", Kind: String, Required: true, Format: "email"},
	{Name: "password", Kind: String, Required: true, MinLen: 6},
}

// Login covers POST /api/users/login.
var Login = Schema{
	{Name: "email", Kind: String, Required: true, Format: "email"},
	{Name: "password", Kind: String, Required: true, MinLen: 6},
}

// CreateLayout covers POST /api/layouts.
var CreateLayout = Schema{
	{Name: "name", Kind: String, Required: true},
	{Name: "description", Kind: String, Required: true},
	{Name: "objects", Kind: List, Required: true, Elem: sceneObject},
}

// UpdateLayout covers PUT /api/layouts/{layoutId}. The objects field is
// optional; when present it replaces the stored sequence wholesale.
var UpdateLayout = Schema{
	{Name: "objects", Kind: List, Elem: sceneObject},
}
