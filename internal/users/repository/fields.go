package repository

import "bootcamp_directory_backend/internal/listing"

// ListFields is the allow-list of API field names exposed to the
// administrative user list. Password and reset token columns are
// deliberately absent.
var ListFields = listing.Fields{
	"id":                 {Column: "id"},
	"name":               {Column: "name"},
	"email":              {Column: "email"},
	"role":               {Column: "role"},
	"courseCreatedCount": {Column: "course_created_count", Kind: listing.Int},
	"courseCreatedLimit": {Column: "course_created_limit", Kind: listing.Int},
	"createdAt":          {Column: "created_at"},
}

// ListQuery describes the users list endpoint for the assembler.
var ListQuery = listing.Query{
	Table:       "users",
	Fields:      ListFields,
	DefaultSort: "created_at DESC",
}
