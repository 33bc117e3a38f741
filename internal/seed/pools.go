package seed

// Fixed value pools and default batch sizes for generated records.

var productNames = []string{
	"Croissant", "Pain au chocolat", "Éclair", "Macaron", "Tarte",
	"Madeleine", "Financier", "Cannelé", "Religieuse", "Paris-Brest",
}

var transactionReasons = []string{
	"Chawarma", "Hlib", "Credit", "Salma", "Salary", "Rent", "Utilities", "Supplies",
}

var cashierNames = []string{"Zied", "Amal", "Ahmed", "Sarah"}

var employeeNames = []string{
	"Ahmed", "Mohamed", "Sarah", "Fatima", "Ali", "Amina", "Karim", "Nour",
}

// Default counts used by GenerateAll, in run order.
const (
	defaultProducts        = 5
	defaultStock           = 10
	defaultTransactions    = 20
	defaultEmployees       = 4
	defaultReports         = 5
	defaultWeeklyTemplates = 3
)
