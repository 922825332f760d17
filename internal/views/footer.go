package views

type FooterLink struct {
	Label string
	Href  string
}

type FooterColumn struct {
	Title string
	Links []FooterLink
}

type FooterView struct {
	Copyright string
	Columns   []FooterColumn
}

// Footer is the same on every page and for every role.
func Footer() FooterView {
	return FooterView{
		Copyright: "© Copyright 2025. All Rights Reserved by " + Brand + ".",
		Columns: []FooterColumn{
			{Title: "Company", Links: []FooterLink{{"About", "#"}, {"Careers", "#"}, {"Press", "#"}}},
			{Title: "Support", Links: []FooterLink{{"Account", "#"}, {"Help Center", "#"}, {"Contact Us", "#"}}},
			{Title: "Legals", Links: []FooterLink{{"Terms & Conditions", "#"}, {"Privacy Policy", "#"}, {"Licensing", "#"}}},
		},
	}
}
