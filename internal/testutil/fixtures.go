package testutil

import (
	"github.com/runoshun/tick/internal/domain"
)

// SampleYAML is a small checklist document:
//
//	Launch
//	  Phase 1
//	    Prep: A(done), B, X{C}, D{steps: D1(done), D2}
//	    Empty
//	  Phase 2
//	    Wrap: E
const SampleYAML = `- Launch:
    - Phase 1:
        - Prep:
            - name: A
              completed: true
              links:
                - title: Runbook
                  url: https://example.com/runbook
            - name: B
              completed: false
              tags:
                - infra
            - X:
                - name: C
                  completed: false
            - name: D
              completed: false
              steps:
                - name: D1
                  completed: true
                - name: D2
                  completed: false
        - Empty: []
    - Phase 2:
        - Wrap:
            - name: E
              completed: false
`

func task(name string, completed bool, extra ...domain.Field) domain.Object {
	obj := domain.Object{
		{Key: domain.FieldName, Value: name},
		{Key: domain.FieldCompleted, Value: completed},
	}
	return append(obj, extra...)
}

func group(name string, children ...any) domain.Object {
	if children == nil {
		children = []any{}
	}
	return domain.Object{{Key: name, Value: children}}
}

// SampleChecklist returns a fresh copy of the SampleYAML checklist.
func SampleChecklist() *domain.Checklist {
	raw := []any{
		group("Launch",
			group("Phase 1",
				group("Prep",
					task("A", true, domain.Field{Key: domain.FieldLinks, Value: []any{
						domain.Object{
							{Key: "title", Value: "Runbook"},
							{Key: "url", Value: "https://example.com/runbook"},
						},
					}}),
					task("B", false, domain.Field{Key: domain.FieldTags, Value: []any{"infra"}}),
					group("X", task("C", false)),
					task("D", false, domain.Field{Key: "steps", Value: []any{
						task("D1", true),
						task("D2", false),
					}}),
				),
				group("Empty"),
			),
			group("Phase 2",
				group("Wrap", task("E", false)),
			),
		),
	}
	c, err := domain.NewChecklist(raw)
	if err != nil {
		panic(err)
	}
	return c
}
