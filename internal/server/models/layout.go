package models

// Vec3 is a coordinate triple used for object placement.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SceneObject is a single positioned object inside a layout. Objects are not
// independently addressable; they live and die with their layout.
type SceneObject struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Scale    Vec3   `json:"scale"`
}

// Layout is a named collection of scene objects owned by exactly one user.
type Layout struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	UserID      string        `json:"userId"`
	Objects     []SceneObject `json:"objects"`
}
