package timesheet

// Samples returns the demo entries used to seed an empty store.
func Samples() []Entry {
	return []Entry{
		{ID: "1", Date: "15 Dec", CheckIn: "09:00 AM", CheckOut: "05:30 PM", TotalHours: 8.5},
		{ID: "2", Date: "14 Dec", CheckIn: "08:45 AM", CheckOut: "06:15 PM", TotalHours: 9.5},
		{ID: "3", Date: "13 Dec", CheckIn: "09:15 AM", CheckOut: "05:45 PM", TotalHours: 8.5},
		{ID: "4", Date: "12 Dec", CheckIn: "09:30 AM", CheckOut: "04:30 PM", TotalHours: 7},
		{ID: "5", Date: "11 Dec", CheckIn: "08:30 AM", CheckOut: "06:00 PM", TotalHours: 9.5},
	}
}
