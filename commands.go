package forward

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops the app after the current system returns.
func (cmd *Commands) Exit(code int) {
	cmd.app.exit(code)
}

// Frame is the index of the frame being run.
func (cmd *Commands) Frame() uint64 {
	return cmd.app.frame
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
