/*
Package flowgrid is a headless state engine for the interactive record table of
a no-code workflow builder.

A host hands the engine a builder configuration and a collection of raw
records. The engine resolves column metadata once, then reduces user
interactions (selection, inline edits, search, sort, cell navigation) into
immutable state snapshots, projects them into renderable views and computes the
workflow outputs: the selected records, their count and the edited records.

# Concept

The engine holds no session state. Every call takes a State and returns a new
one, so hosts can keep grids in memory, in files or in Redis (see
pkg/session and pkg/adapters). Side-effects the engine cannot perform itself,
such as opening a related record or moving keyboard focus after a render, are
returned as ActionRequests for the host to execute.

# Usage

	eng, err := flowgrid.New("./metadata")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, err := eng.Start(ctx, "grid-1", domain.Config{
		ObjectName:    "Opportunity",
		Fields:        []string{"Name", "StageName", "Amount"},
		SelectionMode: domain.SelectionMulti,
		InlineEdit:    true,
	}, records)
	if err != nil {
		log.Fatal(err)
	}

	state, actions, err := eng.Apply(ctx, state, domain.Event{
		Type:     domain.EventToggleSelection,
		RecordID: "006A",
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, act := range actions {
		log.Println("Action:", act.Type)
	}

	view := eng.Project(ctx, state)
	outputs := eng.Outputs(state)
*/
package flowgrid
