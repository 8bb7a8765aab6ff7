// Package synthetic holds the example records written when a seed file is missing.
package synthetic

import (
	"encoding/json"
	"fmt"
)

// Donor is one entry of the donors template. Field order matches the file written to disk.
type Donor struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	BloodGroup        string   `json:"bloodGroup"`
	Phone             string   `json:"phone"`
	PhoneVerified     bool     `json:"phoneVerified"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Address           string   `json:"address"`
	LastDonationDate  *string  `json:"lastDonationDate"`
	TotalDonations    int      `json:"totalDonations"`
	IsAvailable       bool     `json:"isAvailable"`
	MedicalConditions []string `json:"medicalConditions"`
	Notes             string   `json:"notes"`
	ProfileImageURL   *string  `json:"profileImageUrl"`
}

// DonorTemplate returns the one-record example donors file.
func DonorTemplate() []Donor {
	return []Donor{
		{
			ID:                "test_donor_1",
			Name:              "Test Donor",
			Age:               25,
			Gender:            "Male",
			BloodGroup:        "O+",
			Phone:             "9999999999",
			PhoneVerified:     true,
			Latitude:          12.9716,
			Longitude:         77.5946,
			Address:           "Bangalore, India",
			TotalDonations:    0,
			IsAvailable:       true,
			MedicalConditions: []string{"None"},
		},
	}
}

// Marshal renders a template as a 2-space indented JSON document.
func Marshal(template any) ([]byte, error) {
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return data, nil
}
