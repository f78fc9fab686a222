package models

type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Layout is the chrome a screen renders inside.
type Layout struct {
	Name      string     `json:"name"`
	Home      string     `json:"home"`
	Menu      []MenuItem `json:"menu"`
	UserMenu  []MenuItem `json:"user_menu"`
	User      *Profile   `json:"user,omitempty"`
	CartCount *int       `json:"cart_count,omitempty"`
}
