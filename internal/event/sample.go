package event

// Samples returns a fixed set of events for exercising calendar generation
// without scraping a live page.
func Samples() []Raw {
	return []Raw{
		{
			Title:     "Girls Basketball vs North Oldham",
			Date:      "December 12, 2024",
			Time:      "6:00 PM",
			Venue:     "South Oldham High School Gym",
			Address:   "6403 W Highway 146, Crestwood, KY 40014",
			TicketURL: "https://gofan.co/event/123456",
			Opponent:  "North Oldham",
		},
		{
			Title:     "Girls Basketball vs Oldham County",
			Date:      "December 17, 2024",
			Time:      "7:30 PM",
			Venue:     "South Oldham High School Gym",
			Address:   "6403 W Highway 146, Crestwood, KY 40014",
			TicketURL: "https://gofan.co/event/123457",
			Opponent:  "Oldham County",
		},
		{
			Title:     "Girls Basketball @ Eastern",
			Date:      "January 3, 2025",
			Time:      "6:00 PM",
			Venue:     "Eastern High School",
			TicketURL: "https://gofan.co/event/123458",
			Opponent:  "Eastern",
		},
		{
			Title:     "Girls Basketball vs Ballard",
			Date:      "January 10, 2025",
			Time:      "7:30 PM",
			Venue:     "South Oldham High School Gym",
			Address:   "6403 W Highway 146, Crestwood, KY 40014",
			TicketURL: "https://gofan.co/event/123459",
			Opponent:  "Ballard",
		},
	}
}
