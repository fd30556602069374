package forward

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: newApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// WithFrameLimit stops Run after n frames. Zero means no limit.
func (b *AppBuilder) WithFrameLimit(n uint64) *AppBuilder {
	b.app.frameLimit = n

	return b
}

// Build installs the modules in the order they were added. Modules that
// need another module's resources must come after it.
func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
