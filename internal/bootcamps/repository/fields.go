package repository

import "bootcamp_directory_backend/internal/listing"

// ListFields is the allow-list of API field names exposed to list
// queries, mapped onto bootcamps columns.
var ListFields = listing.Fields{
	"id":               {Column: "id"},
	"name":             {Column: "name"},
	"slug":             {Column: "slug"},
	"description":      {Column: "description"},
	"website":          {Column: "website"},
	"phone":            {Column: "phone"},
	"email":            {Column: "email"},
	"address":          {Column: "address"},
	"formattedAddress": {Column: "formatted_address"},
	"city":             {Column: "city"},
	"state":            {Column: "state"},
	"zipcode":          {Column: "zipcode"},
	"country":          {Column: "country"},
	"latitude":         {Column: "latitude", Kind: listing.Float},
	"longitude":        {Column: "longitude", Kind: listing.Float},
	"careers":          {Column: "careers", Array: true},
	"housing":          {Column: "housing", Kind: listing.Bool},
	"jobAssistance":    {Column: "job_assistance", Kind: listing.Bool},
	"jobGuarantee":     {Column: "job_guarantee", Kind: listing.Bool},
	"acceptGi":         {Column: "accept_gi", Kind: listing.Bool},
	"averageRating":    {Column: "average_rating", Kind: listing.Float},
	"averageCost":      {Column: "average_cost", Kind: listing.Int},
	"photo":            {Column: "photo"},
	"createdAt":        {Column: "created_at"},
}

// ListQuery describes the bootcamps list endpoint for the assembler.
var ListQuery = listing.Query{
	Table:       "bootcamps",
	Fields:      ListFields,
	DefaultSort: "created_at DESC",
}
