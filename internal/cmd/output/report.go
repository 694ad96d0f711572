package output

// Report is a titled document made of sections. Table and markdown
// formats render the sections; JSON and YAML encode Source.
type Report struct {
	Title    string
	Sections []Section
	Source   any
}

// Section is one part of a Report: a table, a block of text, or empty.
type Section struct {
	Title string
	Data  *Data
	Text  string
	// Lang is the code block syntax used for Text in markdown.
	Lang string
}

// AddTable appends a table section.
func (r *Report) AddTable(title string, data Data) *Report {
	r.Sections = append(r.Sections, Section{Title: title, Data: &data})
	return r
}

// AddText appends a preformatted text section.
func (r *Report) AddText(title, text, lang string) *Report {
	r.Sections = append(r.Sections, Section{Title: title, Text: text, Lang: lang})
	return r
}
