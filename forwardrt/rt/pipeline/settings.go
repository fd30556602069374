package pipeline

// Settings are the user-facing render switches. The renderer reads them
// every frame, so a UI may flip them between frames through Toggles.
type Settings struct {
	Wireframe     bool
	Boundaries    bool
	Multipass     bool
	UseLighting   bool
	DisableLights bool
	UseNormalMaps bool
	UseEmissive   bool
	UseOcclusion  bool
	UseSpecular   bool
}

// DefaultSettings enables lighting and every texture channel.
func DefaultSettings() Settings {
	return Settings{
		UseLighting:   true,
		UseNormalMaps: true,
		UseEmissive:   true,
		UseOcclusion:  true,
		UseSpecular:   true,
	}
}

// Toggle is one labelled switch bound to a Settings field.
type Toggle struct {
	Label string
	Value *bool
}

// Toggles lists the switches in display order.
func (s *Settings) Toggles() []Toggle {
	return []Toggle{
		{"Wireframe", &s.Wireframe},
		{"Boundaries", &s.Boundaries},
		{"Multipass", &s.Multipass},
		{"Lighting", &s.UseLighting},
		{"Disable lights", &s.DisableLights},
		{"Normal maps", &s.UseNormalMaps},
		{"Emissive", &s.UseEmissive},
		{"Occlusion", &s.UseOcclusion},
		{"Specular", &s.UseSpecular},
	}
}
