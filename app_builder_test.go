package forward

import "testing"

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type MockModule2 struct {
	installed bool
}

func (m *MockModule2) Install(app *App, commands *Commands) {
	m.installed = true
}
func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	if len(app.stages) != len(defaultStages) {
		t.Errorf("Expected %d stages, got %v", len(defaultStages), len(app.stages))
	}
	if app.frameLimit != 0 {
		t.Errorf("Expected no frame limit, got %v", app.frameLimit)
	}
}

func TestAppBuilder_WithFrameLimit(t *testing.T) {
	app := NewAppBuilder().WithFrameLimit(10).Build()

	if app.frameLimit != 10 {
		t.Errorf("Expected frameLimit to be 10, got %v", app.frameLimit)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}
func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	builder.Build()

	// Ensure Install() method of the module is called (you can use mocking frameworks like `testify` to track this)
	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule2{}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)

	builder.Build()

	if len(builder.modules) != 2 {
		t.Errorf("Expected 2 modules, got %v", len(builder.modules))
	}
	if !module1.installed {
		t.Errorf("Expected Install to be called on the module 1, but it was not")
	}
	if !module2.installed {
		t.Errorf("Expected Install to be called on the module 2, but it was not")
	}
}

type orderModule struct {
	name  string
	order *[]string
}

func (m orderModule) Install(app *App, commands *Commands) {
	*m.order = append(*m.order, m.name)
}

func TestAppBuilder_InstallOrder(t *testing.T) {
	var order []string
	NewAppBuilder().
		UseModule(orderModule{"a", &order}, orderModule{"b", &order}).
		UseModule(orderModule{"c", &order}).
		Build()

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected modules installed in order a b c, got %v", order)
	}
}
