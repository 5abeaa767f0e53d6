package entities

import "fmt"

// Actor - кто изменил заказ. EmployeeID = 0 для клиента, администратора и системы.
type Actor struct {
	EmployeeID  uint64
	Description string
}

func SystemActor(description string) Actor {
	return Actor{Description: description}
}

func EmployeeActor(e Employee) Actor {
	return Actor{
		EmployeeID:  e.ID,
		Description: fmt.Sprintf("%s: %s", e.Role.Name, e.FullName),
	}
}

// Is - действие совершил именно этот сотрудник.
func (a Actor) Is(employeeID uint64) bool {
	return a.EmployeeID != 0 && a.EmployeeID == employeeID
}
