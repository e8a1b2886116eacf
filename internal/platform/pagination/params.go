package pagination

// DefaultLimit is the page size used when the client sends none.
const DefaultLimit = 20

// Params embeds into Huma input structs for paginated listings.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque cursor taken from the previous page's Link header"`
	Limit  int    `query:"limit"  doc:"Maximum records per page"                                 default:"20" minimum:"1" maximum:"100"`
}

// PageSize returns the requested limit, or DefaultLimit when unset.
func (p Params) PageSize() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}
