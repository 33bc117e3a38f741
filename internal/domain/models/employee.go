package models

// EmployeeRole discriminates the two staff kinds.
type EmployeeRole string

const (
	RoleCashier EmployeeRole = "caissier"
	RoleBaker   EmployeeRole = "boulanger"
)

// Employee is a staff member. The pin exists only for cashiers; the
// constructors are the only way to build one, so a baker can never carry a
// stray pin and a cashier can never lack one.
type Employee struct {
	ID   string
	Name string
	Role EmployeeRole

	pin string
}

// NewCashier builds a cashier with their 4-digit POS pin.
func NewCashier(name, pin string) Employee {
	return Employee{Name: name, Role: RoleCashier, pin: pin}
}

// NewBaker builds a baker; bakers have no pin.
func NewBaker(name string) Employee {
	return Employee{Name: name, Role: RoleBaker}
}

// PIN returns the pin and whether the employee has one.
func (e Employee) PIN() (string, bool) {
	if e.Role != RoleCashier {
		return "", false
	}
	return e.pin, true
}

// Fields returns the wire document written to the employees collection. The
// pin key is absent, not empty, for non-cashiers.
func (e Employee) Fields() map[string]any {
	fields := map[string]any{
		"name": e.Name,
		"type": string(e.Role),
	}
	if pin, ok := e.PIN(); ok {
		fields["pin"] = pin
	}
	return fields
}
