// Package crew models the crew, vehicle, and route metadata attached to a
// reconciliation session before finalization. The Selection value object may
// be partial while the operator is still filling the form; completeness is a
// finalization concern, reported through MissingRequirements.
package crew

import (
	"errors"

	"reconcile/internal/core/domain/model/kernel"
	"reconcile/internal/pkg/errs"
	"reconcile/internal/pkg/guard"
)

var (
	ErrDriverIsNotConstructed  = errors.New("Driver must be created via NewDriver")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle")
	ErrRouteIsNotConstructed   = errors.New("Route must be created via NewRoute")
)

// Blocker keys reported by Selection.MissingRequirements. They are stable
// identifiers consumed by the UI to render actionable guidance.
const (
	RequirementDrivers         = "drivers"
	RequirementVehicle         = "vehicle"
	RequirementRoutes          = "routes"
	RequirementOdometerReading = "odometerReading"
)

// Driver identifies a crew member assigned to the dispatch.
type Driver struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

// NewDriver creates a driver reference. Both the identifier and the display
// name are required.
func NewDriver(id kernel.UUID, name string) (Driver, error) {
	if err := id.Validate(); err != nil {
		return Driver{}, err
	}
	if name == "" {
		return Driver{}, errs.NewValueIsRequiredError("driver name")
	}

	return Driver{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the driver identifier.
func (d Driver) ID() kernel.UUID { return d.id }

// Name returns the driver display name.
func (d Driver) Name() string { return d.name }

// Validate ensures the driver was created via NewDriver.
func (d Driver) Validate() error {
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// Vehicle identifies the unit assigned to the dispatch.
type Vehicle struct {
	id     kernel.UUID
	name   string
	plates string

	guard guard.ConstructorGuard
}

// NewVehicle creates a vehicle reference. Identifier and name are required;
// plates are whatever the fleet registry reports.
func NewVehicle(id kernel.UUID, name, plates string) (Vehicle, error) {
	if err := id.Validate(); err != nil {
		return Vehicle{}, err
	}
	if name == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle name")
	}

	return Vehicle{id: id, name: name, plates: plates, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the vehicle identifier.
func (v Vehicle) ID() kernel.UUID { return v.id }

// Name returns the vehicle display name.
func (v Vehicle) Name() string { return v.name }

// Plates returns the vehicle license plates.
func (v Vehicle) Plates() string { return v.plates }

// Validate ensures the vehicle was created via NewVehicle.
func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// Route identifies a delivery route covered by the dispatch.
type Route struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

// NewRoute creates a route reference.
func NewRoute(id kernel.UUID, name string) (Route, error) {
	if err := id.Validate(); err != nil {
		return Route{}, err
	}
	if name == "" {
		return Route{}, errs.NewValueIsRequiredError("route name")
	}

	return Route{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the route identifier.
func (r Route) ID() kernel.UUID { return r.id }

// Name returns the route display name.
func (r Route) Name() string { return r.name }

// Validate ensures the route was created via NewRoute.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Selection is the crew form attached to a session: drivers, vehicle,
// routes, and the odometer reading captured at departure. A Selection may be
// partial; finalization is gated on MissingRequirements returning empty.
type Selection struct {
	drivers         []Driver
	vehicle         *Vehicle
	routes          []Route
	odometerReading string
}

// NewSelection creates a crew selection from the operator's current form
// state. Every present driver, vehicle, and route must be properly
// constructed; absence is allowed.
func NewSelection(drivers []Driver, vehicle *Vehicle, routes []Route, odometerReading string) (Selection, error) {
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return Selection{}, err
		}
	}
	if vehicle != nil {
		if err := vehicle.Validate(); err != nil {
			return Selection{}, err
		}
	}
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			return Selection{}, err
		}
	}

	return Selection{
		drivers:         append([]Driver(nil), drivers...),
		vehicle:         vehicle,
		routes:          append([]Route(nil), routes...),
		odometerReading: odometerReading,
	}, nil
}

// Drivers returns the selected drivers.
func (s Selection) Drivers() []Driver {
	return append([]Driver(nil), s.drivers...)
}

// Vehicle returns the selected vehicle, or nil when none is set.
func (s Selection) Vehicle() *Vehicle { return s.vehicle }

// Routes returns the selected routes.
func (s Selection) Routes() []Route {
	return append([]Route(nil), s.routes...)
}

// OdometerReading returns the odometer reading captured at departure.
func (s Selection) OdometerReading() string { return s.odometerReading }

// MissingRequirements returns the stable blocker keys for every finalization
// requirement this selection does not yet satisfy. An empty slice means the
// crew form is complete.
func (s Selection) MissingRequirements() []string {
	missing := make([]string, 0, 4)
	if len(s.drivers) == 0 {
		missing = append(missing, RequirementDrivers)
	}
	if s.vehicle == nil {
		missing = append(missing, RequirementVehicle)
	}
	if len(s.routes) == 0 {
		missing = append(missing, RequirementRoutes)
	}
	if s.odometerReading == "" {
		missing = append(missing, RequirementOdometerReading)
	}
	return missing
}

// IsComplete reports whether every finalization requirement is satisfied.
func (s Selection) IsComplete() bool {
	return len(s.MissingRequirements()) == 0
}
