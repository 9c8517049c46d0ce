package dto_test

import (
	"strings"
	"testing"

	"casitas/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name           string
		filter         dto.Filter
		expectedClause string
		expectedArgs   map[string]any
	}{
		{
			name: "eq operator",
			filter: dto.Filter{
				Field:    "zone",
				Value:    "tres-cruces",
				Operator: dto.FilterOperatorEq,
			},
			expectedClause: "zone = :zone",
			expectedArgs:   map[string]any{"zone": "tres-cruces"},
		},
		{
			name: "eq operator with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "upcoming",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			expectedClause: "bookings.status = :status",
			expectedArgs:   map[string]any{"status": "upcoming"},
		},
		{
			name: "like operator wraps value in wildcards",
			filter: dto.Filter{
				Field:    "university",
				Value:    "BUAP",
				Operator: dto.FilterOperatorLike,
			},
			expectedClause: "LOWER(university) LIKE LOWER(:university) ",
			expectedArgs:   map[string]any{"university": "%BUAP%"},
		},
		{
			name: "not_eq operator",
			filter: dto.Filter{
				Field:    "status",
				Value:    "cancelled",
				Operator: dto.FilterOperatorNotEq,
			},
			expectedClause: "status != :status",
			expectedArgs:   map[string]any{"status": "cancelled"},
		},
		{
			name: "less_eq operator with arg name",
			filter: dto.Filter{
				ArgName:  "check_in",
				Field:    "check_in",
				Value:    "2025-08-31",
				Operator: dto.FilterOperatorLessEq,
			},
			expectedClause: "check_in <= :check_in",
			expectedArgs:   map[string]any{"check_in": "2025-08-31"},
		},
		{
			name: "greater_eq operator",
			filter: dto.Filter{
				Field:    "check_out",
				Value:    "2025-08-01",
				Operator: dto.FilterOperatorGreaterEq,
			},
			expectedClause: "check_out >= :check_out",
			expectedArgs:   map[string]any{"check_out": "2025-08-01"},
		},
		{
			name: "is_null operator",
			filter: dto.Filter{
				Field:    "owner_id",
				Operator: dto.FilterIsNull,
			},
			expectedClause: "owner_id IS NULL",
			expectedArgs:   map[string]any{},
		},
		{
			name: "is_not_null operator",
			filter: dto.Filter{
				Field:    "responded_at",
				Operator: dto.FilterIsNotNull,
			},
			expectedClause: "responded_at IS NOT NULL",
			expectedArgs:   map[string]any{},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "zone",
				Value:    "centro",
				Operator: "between",
			},
			expectedClause: "",
			expectedArgs:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if clause != tt.expectedClause {
				t.Errorf("expected clause %q, got %q", tt.expectedClause, clause)
			}

			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, expected := range tt.expectedArgs {
				if args[key] != expected {
					t.Errorf("expected arg %s to be %v, got %v", key, expected, args[key])
				}
			}
		})
	}
}

func TestFilter_GetWhereClauseInOperator(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"upcoming", "active"},
		Operator: dto.FilterOperatorIn,
	}

	clause, args := filter.GetWhereClause()

	expectedClause := "status IN (:status_0, :status_1) "
	if clause != expectedClause {
		t.Errorf("expected clause %q, got %q", expectedClause, clause)
	}

	if args["status_0"] != "upcoming" || args["status_1"] != "active" {
		t.Errorf("expected named args for each element, got %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "zone",
				Value:    "centro",
				Operator: dto.FilterOperatorEq,
			},
			dto.Filter{
				Field:    "available",
				Value:    true,
				Operator: dto.FilterOperatorEq,
			},
		},
	}

	clause, args := group.GetWhereClause()

	expected := "(zone = :zone AND available = :available)"
	if clause != expected {
		t.Errorf("expected clause %q, got %q", expected, clause)
	}

	if args["zone"] != "centro" || args["available"] != true {
		t.Errorf("expected args for both filters, got %v", args)
	}
}

func TestFilterGroup_GetWhereClauseNested(t *testing.T) {
	// The bilingual search filter: one term matched against both name columns
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "zone",
				Value:    "tres-cruces",
				Operator: dto.FilterOperatorEq,
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{
						ArgName:  "name_es",
						Field:    "name_es",
						Value:    "casa",
						Operator: dto.FilterOperatorLike,
					},
					dto.Filter{
						ArgName:  "name_en",
						Field:    "name_en",
						Value:    "casa",
						Operator: dto.FilterOperatorLike,
					},
				},
			},
		},
	}

	clause, args := group.GetWhereClause()

	if !strings.Contains(clause, "OR") {
		t.Errorf("expected nested OR group in clause, got %q", clause)
	}

	if !strings.Contains(clause, "zone = :zone AND") {
		t.Errorf("expected outer AND join, got %q", clause)
	}

	if args["name_es"] != "%casa%" || args["name_en"] != "%casa%" {
		t.Errorf("expected wildcarded args for both name columns, got %v", args)
	}
}

func TestFilterGroup_GetWhereClauseEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	clause, args := group.GetWhereClause()

	if clause != "" {
		t.Errorf("expected empty clause for empty group, got %q", clause)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
