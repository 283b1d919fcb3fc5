package settings

type Branding struct {
	AppName      string `json:"app_name" binding:"required,max=100"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	PrimaryColor string `json:"primary_color" binding:"omitempty,hexcolor"`
}

// DefaultBranding is served until an administrator stores an override.
var DefaultBranding = Branding{
	AppName:      "HR Zen",
	PrimaryColor: "#3b82f6",
}
