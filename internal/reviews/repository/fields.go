package repository

import "bootcamp_directory_backend/internal/listing"

// ListFields is the allow-list of API field names exposed to list
// queries, mapped onto reviews columns. Columns are qualified because
// list queries join bootcamps for population.
var ListFields = listing.Fields{
	"id":         {Column: "r.id"},
	"bootcampId": {Column: "r.bootcamp_id"},
	"userId":     {Column: "r.user_id"},
	"title":      {Column: "r.title"},
	"body":       {Column: "r.body"},
	"rating":     {Column: "r.rating", Kind: listing.Int},
	"createdAt":  {Column: "r.created_at"},
}

// ListQuery describes the reviews list endpoint for the assembler.
// Every row carries its bootcamp's name and description.
var ListQuery = listing.Query{
	Table:       "reviews r",
	Fields:      ListFields,
	DefaultSort: "r.created_at DESC",
	Join: &listing.Join{
		Clause: "JOIN bootcamps b ON b.id = r.bootcamp_id",
		Name:   "bootcamp",
		Columns: map[string]string{
			"id":          "b.id",
			"name":        "b.name",
			"description": "b.description",
		},
	},
}
