package repository

import "bootcamp_directory_backend/internal/listing"

// ListFields is the allow-list of API field names exposed to list
// queries, mapped onto courses columns. Columns are qualified because
// list queries join bootcamps for population.
var ListFields = listing.Fields{
	"id":                   {Column: "c.id"},
	"bootcampId":           {Column: "c.bootcamp_id"},
	"title":                {Column: "c.title"},
	"description":          {Column: "c.description"},
	"weeks":                {Column: "c.weeks", Kind: listing.Int},
	"tuition":              {Column: "c.tuition", Kind: listing.Float},
	"minimumSkill":         {Column: "c.minimum_skill"},
	"scholarshipAvailable": {Column: "c.scholarship_available", Kind: listing.Bool},
	"createdAt":            {Column: "c.created_at"},
}

// ListQuery describes the courses list endpoint for the assembler.
// Every row carries its bootcamp's name and description.
var ListQuery = listing.Query{
	Table:       "courses c",
	Fields:      ListFields,
	DefaultSort: "c.created_at DESC",
	Join: &listing.Join{
		Clause: "JOIN bootcamps b ON b.id = c.bootcamp_id",
		Name:   "bootcamp",
		Columns: map[string]string{
			"id":          "b.id",
			"name":        "b.name",
			"description": "b.description",
		},
	},
}
