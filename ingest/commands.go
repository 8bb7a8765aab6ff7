package ingest

import (
	"firstaid/dataloader/model"
	"firstaid/dataloader/synthetic"
)

// CommandAll runs every upload in order.
const CommandAll = "all"

// Command maps a CLI command name to the uploads it runs, in order.
type Command struct {
	Name    string
	Short   string
	Targets []model.Target
}

// DefaultCommands returns the fixed command table.
func DefaultCommands() []Command {
	medicalConditions := model.Target{File: "medical_conditions.json", Collection: "medical_conditions"}
	categories := model.Target{File: "categories.json", Collection: "categories"}
	resources := model.Target{File: "first_aid_resources.json", Collection: "resources", AddTimestamps: true}
	donors := model.Target{
		File:          "donors.json",
		Collection:    "donors",
		AddTimestamps: true,
		Template:      synthetic.DonorTemplate(),
	}

	return []Command{
		{
			Name:    "medical_conditions",
			Short:   "Upload medical_conditions.json into medical_conditions",
			Targets: []model.Target{medicalConditions},
		},
		{
			Name:    "categories",
			Short:   "Upload categories.json into categories",
			Targets: []model.Target{categories},
		},
		{
			Name:    "first_aid_resources",
			Short:   "Upload first_aid_resources.json into resources, with timestamps",
			Targets: []model.Target{resources},
		},
		{
			Name:    "donors",
			Short:   "Upload donors.json into donors, with timestamps (writes a template if missing)",
			Targets: []model.Target{donors},
		},
		{
			Name:    CommandAll,
			Short:   "Run every upload above in order",
			Targets: []model.Target{medicalConditions, categories, resources, donors},
		},
	}
}
