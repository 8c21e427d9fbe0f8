package flowgrid_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/flowgrid"
	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	"github.com/aretw0/flowgrid/pkg/domain"
)

// ExampleNew_memory uses an in-memory metadata provider, so no files are read.
func ExampleNew_memory() {
	provider := memory.NewProvider(map[string][]domain.FieldMetadata{
		"Opportunity": {
			{FieldAPIName: "Name", Label: "Opportunity", DataType: domain.DataTypeString},
			{FieldAPIName: "Amount", Label: "Amount", DataType: domain.DataTypeCurrency, IsEditable: true},
		},
	})

	eng, err := flowgrid.New("", flowgrid.WithMetadataProvider(provider))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, err := eng.Start(ctx, "example", domain.Config{
		ObjectName:    "Opportunity",
		Fields:        []string{"Name", "Amount"},
		SelectionMode: domain.SelectionMulti,
		InlineEdit:    true,
	}, []domain.Record{
		{"Id": "1", "Name": "Acme", "Amount": 1500},
		{"Id": "2", "Name": "Globex", "Amount": 250.5},
		{"Id": "3", "Name": "Initech", "Amount": nil},
	})
	if err != nil {
		log.Fatal(err)
	}

	state, _, err = eng.Apply(ctx, state, domain.Event{Type: domain.EventSortBy, Field: "Amount"})
	if err != nil {
		log.Fatal(err)
	}
	state, actions, err := eng.Apply(ctx, state, domain.Event{Type: domain.EventToggleSelection, RecordID: "2"})
	if err != nil {
		log.Fatal(err)
	}

	for _, row := range eng.Project(ctx, state).Rows {
		fmt.Printf("%d %-8s %-10s selected=%v\n", row.Number, row.Cells[0].Display, row.Cells[1].Display, row.Selected)
	}
	fmt.Println(actions[0].Type, eng.Outputs(state).SelectedCount)

	// Output:
	// 1 Globex   $250.50    selected=true
	// 2 Acme     $1,500.00  selected=false
	// 3 Initech             selected=false
	// OUTPUTS_CHANGED 1
}
