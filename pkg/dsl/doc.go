/*
Package dsl provides a fluent Go builder for grid definitions.

It produces the same three things a definition file carries (the builder
configuration, the records and the field metadata of the object) without going
through YAML. This is handy for tests, for hosts that assemble grids at
runtime and for IDE completion.

Example usage:

	b := dsl.New("Opportunity").
		Selection(domain.SelectionMulti).
		InlineEdit().
		Search()

	b.Add("Name").Describe("Opportunity Name")
	b.Add("Amount").Type(domain.DataTypeCurrency).Editable()
	b.Add("Account.Name").Label("Account").Relationship("AccountId")

	b.Records(
		domain.Record{"Id": "006A", "Name": "Acme renewal", "Amount": 1200},
	)

	grid, err := b.Build()
	// grid.Metadata is a ports.MetadataProvider for flowgrid.WithMetadataProvider
	// and grid.Config / grid.Records feed Engine.Start.
*/
package dsl
