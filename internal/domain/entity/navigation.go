package entity

// NavLink is a single sidebar entry
type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// NavSection is a collapsible group of links
type NavSection struct {
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	DefaultOpen bool      `json:"default_open"`
	Links       []NavLink `json:"links"`
}

// Sidebar is the application navigation
type Sidebar struct {
	GroupLabel string       `json:"group_label"`
	Sections   []NavSection `json:"sections"`
}

// AppSidebar returns the fixed navigation of the admin UI
func AppSidebar() Sidebar {
	return Sidebar{
		GroupLabel: "Application",
		Sections: []NavSection{
			{
				Label:       "Doctors",
				Icon:        "users-round",
				DefaultOpen: true,
				Links: []NavLink{
					{Label: "Add Doctor", Href: "/doctors/doc-add", Icon: "user-round-plus"},
					{Label: "Doctors List", Href: "/doctors/doc-list", Icon: "scroll-text"},
					// TODO: point at the specializations page once it exists
					{Label: "Specializations", Href: "/doctors/doc-add", Icon: "briefcase-medical"},
				},
			},
		},
	}
}

// ForPath returns the sidebar with the first link matching path marked active
func (s Sidebar) ForPath(path string) Sidebar {
	out := Sidebar{GroupLabel: s.GroupLabel, Sections: make([]NavSection, len(s.Sections))}
	matched := false
	for i, section := range s.Sections {
		links := make([]NavLink, len(section.Links))
		for j, link := range section.Links {
			link.Active = !matched && link.Href == path
			if link.Active {
				matched = true
			}
			links[j] = link
		}
		section.Links = links
		out.Sections[i] = section
	}
	return out
}
