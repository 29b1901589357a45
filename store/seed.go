package store

import (
	"time"

	"civictriage-be/models"
)

// SeedIssues returns the static fallback issue set. It is merged under
// live data on every fetch and served alone when the live store is
// unreachable. Callers get a fresh copy each time.
func SeedIssues() []models.Issue {
	resolved := time.Date(2024, 7, 19, 17, 0, 0, 0, time.UTC)

	issues := []models.Issue{
		{
			ID:          "CIV-001",
			Category:    "Pothole",
			Description: "Large pothole at the entrance of the main market, causing traffic issues.",
			Location:    models.Location{Address: "Sitabuldi Main Rd, Nagpur", Lat: 21.1463, Lng: 79.0822},
			Status:      models.Pending,
			Priority:    models.PriorityHigh,
			ReportedAt:  time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC),
			Citizen:     models.Citizen{Name: "John Doe", Contact: "john.d@email.com"},
			ImageURL:    "https://picsum.photos/seed/pothole1/800/600",
		},
		{
			ID:          "CIV-002",
			Category:    "Garbage",
			Description: "Garbage bin overflowing for three days near the park.",
			Location:    models.Location{Address: "Dharampeth, Nagpur", Lat: 21.1434, Lng: 79.0622},
			Status:      models.Assigned,
			Priority:    models.PriorityMedium,
			ReportedAt:  time.Date(2024, 7, 19, 14, 30, 0, 0, time.UTC),
			AssignedTo:  "Sanitation Dept.",
			Citizen:     models.Citizen{Name: "Jane Smith", Contact: "jane.s@email.com"},
			ImageURL:    "https://picsum.photos/seed/garbage1/800/600",
		},
		{
			ID:          "CIV-003",
			Category:    "Water Leakage",
			Description: "Clean water pipe leakage on the sidewalk.",
			Location:    models.Location{Address: "Koregaon Park, Pune", Lat: 18.5362, Lng: 73.8939},
			Status:      models.Resolved,
			Priority:    models.PriorityHigh,
			ReportedAt:  time.Date(2024, 7, 18, 11, 0, 0, 0, time.UTC),
			ResolvedAt:  &resolved,
			AssignedTo:  "Water Dept.",
			Citizen:     models.Citizen{Name: "Sam Wilson", Contact: "sam.w@email.com"},
			ImageURL:    "https://picsum.photos/seed/water1/800/600",
			ProofURL:    "https://picsum.photos/seed/proof1/800/600",
		},
		{
			ID:          "CIV-004",
			Category:    "Streetlight Outage",
			Description: "Streetlight not working for a week, causing safety concerns at night.",
			Location:    models.Location{Address: "Bandra West, Mumbai", Lat: 19.0544, Lng: 72.84},
			Status:      models.Approved,
			Priority:    models.PriorityMedium,
			ReportedAt:  time.Date(2024, 7, 21, 8, 0, 0, 0, time.UTC),
			Citizen:     models.Citizen{Name: "Emily Carter", Contact: "emily.c@email.com"},
			ImageURL:    "https://picsum.photos/seed/light1/800/600",
		},
		{
			ID:          "CIV-005",
			Category:    "Pothole",
			Description: "Multiple small potholes on the highway exit ramp.",
			Location:    models.Location{Address: "Mumbai-Pune Expressway, Navi Mumbai", Lat: 19.033, Lng: 73.0297},
			Status:      models.Pending,
			Priority:    models.PriorityMedium,
			ReportedAt:  time.Date(2024, 7, 22, 10, 15, 0, 0, time.UTC),
			Citizen:     models.Citizen{Name: "Michael Brown", Contact: "michael.b@email.com"},
			ImageURL:    "https://picsum.photos/seed/pothole2/800/600",
		},
		{
			ID:          "CIV-006",
			Category:    "Garbage",
			Description: "Construction debris dumped illegally by the river bank.",
			Location:    models.Location{Address: "Ramdaspeth, Nagpur", Lat: 21.1352, Lng: 79.0645},
			Status:      models.Assigned,
			Priority:    models.PriorityHigh,
			ReportedAt:  time.Date(2024, 7, 21, 18, 45, 0, 0, time.UTC),
			AssignedTo:  "Sanitation Dept.",
			Citizen:     models.Citizen{Name: "Jessica White", Contact: "jessica.w@email.com"},
			ImageURL:    "https://picsum.photos/seed/garbage2/800/600",
		},
	}

	for i := range issues {
		issues[i].StatusHistory = []models.StatusEntry{
			{Status: issues[i].Status, Date: issues[i].ReportedAt},
		}
	}
	return issues
}

// SeedUsers returns the static fallback user directory.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:        "user-1",
			Name:      "Admin User",
			Email:     "admin@civic.gov",
			Role:      models.RoleSuperAdmin,
			AvatarURL: "https://i.pravatar.cc/150?u=admin@civic.gov",
		},
		{
			ID:         "user-2",
			Name:       "Sanitation Head",
			Email:      "sanitation.head@civic.gov",
			Role:       models.RoleDepartmentHead,
			Department: "Sanitation Dept.",
			AvatarURL:  "https://i.pravatar.cc/150?u=sanitation.head@civic.gov",
		},
		{
			ID:         "user-3",
			Name:       "PWD Staff",
			Email:      "pwd.staff@civic.gov",
			Role:       models.RoleStaff,
			Department: "Public Works Dept.",
			AvatarURL:  "https://i.pravatar.cc/150?u=pwd.staff@civic.gov",
		},
	}
}
