package seeders

import (
	"github.com/example/invoice-dashboard/internal/customers"
	"github.com/example/invoice-dashboard/internal/invoices"
	"github.com/example/invoice-dashboard/internal/revenue"
	"github.com/example/invoice-dashboard/internal/users"
)

// Placeholder returns the built-in dashboard dataset. Every call returns
// fresh slices.
func Placeholder() Dataset {
	const (
		evilRabbit     = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
		delbaOliveira  = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
		leeRobinson    = "3958dc9e-742f-4377-85e9-fec4b6a6442a"
		michaelNovotny = "76d65c26-f784-44a2-ac19-586678f7c2f2"
		amyBurns       = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
		balazsOrban    = "13d07535-c59e-4157-a011-f8d2ef4e0cbb"
	)

	return Dataset{
		Users: []users.User{
			{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", Password: "123456"},
		},
		Customers: []customers.Customer{
			{ID: evilRabbit, Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
			{ID: delbaOliveira, Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
			{ID: leeRobinson, Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
			{ID: michaelNovotny, Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
			{ID: amyBurns, Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
			{ID: balazsOrban, Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
		},
		Invoices: []invoices.Invoice{
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000001", CustomerID: evilRabbit, Amount: 15795, Status: "pending", Date: "2022-12-06"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000002", CustomerID: delbaOliveira, Amount: 20348, Status: "pending", Date: "2022-11-14"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000003", CustomerID: amyBurns, Amount: 3040, Status: "paid", Date: "2022-10-29"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000004", CustomerID: michaelNovotny, Amount: 44800, Status: "paid", Date: "2023-09-10"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000005", CustomerID: balazsOrban, Amount: 34577, Status: "pending", Date: "2023-08-05"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000006", CustomerID: leeRobinson, Amount: 54246, Status: "pending", Date: "2023-07-16"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000007", CustomerID: evilRabbit, Amount: 666, Status: "pending", Date: "2023-06-27"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000008", CustomerID: michaelNovotny, Amount: 32545, Status: "paid", Date: "2023-06-09"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-000000000009", CustomerID: amyBurns, Amount: 1250, Status: "paid", Date: "2023-06-17"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-00000000000a", CustomerID: balazsOrban, Amount: 8546, Status: "paid", Date: "2023-06-07"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-00000000000b", CustomerID: delbaOliveira, Amount: 500, Status: "paid", Date: "2023-08-19"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-00000000000c", CustomerID: balazsOrban, Amount: 8945, Status: "paid", Date: "2023-06-03"},
			{ID: "8f6c1b2e-0a01-4c3d-9e11-00000000000d", CustomerID: leeRobinson, Amount: 1000, Status: "paid", Date: "2022-06-05"},
		},
		Revenue: []revenue.Record{
			{Month: "Jan", Revenue: 2000},
			{Month: "Feb", Revenue: 1800},
			{Month: "Mar", Revenue: 2200},
			{Month: "Apr", Revenue: 2500},
			{Month: "May", Revenue: 2300},
			{Month: "Jun", Revenue: 3200},
			{Month: "Jul", Revenue: 3500},
			{Month: "Aug", Revenue: 3700},
			{Month: "Sep", Revenue: 2500},
			{Month: "Oct", Revenue: 2800},
			{Month: "Nov", Revenue: 3000},
			{Month: "Dec", Revenue: 4800},
		},
	}
}
