package forward

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module contributes resources and systems to an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages     []Stage
	systems    map[string][]systemFn
	resources  map[reflect.Type]any
	cleanups   []func()
	frame      uint64
	frameLimit uint64
	exiting    bool
	exitCode   int
}

func newApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Frame is the number of completed frames.
func (app *App) Frame() uint64 { return app.frame }

// ExitCode is the code passed to Commands.Exit.
func (app *App) ExitCode() int { return app.exitCode }

// Run executes every stage in order, once per frame, until a system asks
// to exit or the frame limit is reached. Cleanups run in reverse order of
// registration before Run returns.
func (app *App) Run() {
	defer app.runCleanups()

	app.Logger().Debugf("running %d stages", len(app.stages))
	for !app.exiting {
		app.callSystems()
		app.frame++
		if app.frameLimit > 0 && app.frame >= app.frameLimit {
			break
		}
	}
}

// Step runs a single frame. It reports false once the app wants to exit.
func (app *App) Step() bool {
	if app.exiting {
		return false
	}
	app.callSystems()
	app.frame++
	return !app.exiting
}

func (app *App) callSystems() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
			if app.exiting {
				return
			}
		}
	}
}

func (app *App) exit(code int) {
	app.exiting = true
	app.exitCode = code
}

func (app *App) addCleanup(fn func()) {
	app.cleanups = append(app.cleanups, fn)
}

func (app *App) runCleanups() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
	app.cleanups = nil
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type *T registered on app.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// MustResource is Resource for modules that cannot work without T.
func MustResource[T any](app *App) *T {
	r, ok := Resource[T](app)
	if !ok {
		panic(fmt.Sprintf("%s is not in resources", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return r
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("system %s: argument %d (%s) must be a pointer",
				runtime.FuncForPC(systemValue.Pointer()).Name(), i, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			resourceVal := reflect.ValueOf(resource)
			typedResourceVal := reflect.NewAt(underlyingType, resourceVal.UnsafePointer())

			args[i] = typedResourceVal
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
