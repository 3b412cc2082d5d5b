package ifc

import "fmt"

// ============================================================
// Structural Validation
// ============================================================

// Violation — одно нарушение структурного правила.
type Violation struct {
	EntityID int    `json:"entity_id"`
	Entity   string `json:"entity"`
	Rule     string `json:"rule"`
	Detail   string `json:"detail"`
}

// Validate прогоняет структурные правила по всей модели и
// возвращает список нарушений. Модель валидна при пустом списке.
func Validate(m *Model) []Violation {
	var out []Violation

	report := func(inst Instance, rule, detail string) {
		out = append(out, Violation{
			EntityID: inst.ID(),
			Entity:   inst.StepType(),
			Rule:     rule,
			Detail:   detail,
		})
	}

	registered := make(map[Instance]bool, len(m.instances))
	for _, inst := range m.instances {
		registered[inst] = true
	}

	// Ссылка из отношения обязана вести на зарегистрированный экземпляр.
	checkRef := func(from Instance, target Instance, role string) {
		if target == nil || !registered[target] {
			report(from, "unregistered-reference", role+" is not registered in the model")
		}
	}

	projects := 0
	globalIDs := make(map[string]Instance)
	context := m.Context()

	for _, inst := range m.instances {
		if rooted, ok := inst.(Rooted); ok {
			gid := rooted.GID()
			if len(gid) != 22 {
				report(inst, "missing-globalid", fmt.Sprintf("global id %q is not 22 characters", gid))
			} else if prev, dup := globalIDs[gid]; dup {
				report(inst, "duplicate-globalid", fmt.Sprintf("global id already used by #%d", prev.ID()))
			} else {
				globalIDs[gid] = inst
			}
		}

		switch v := inst.(type) {
		case *Project:
			projects++

		case *ShapeRepresentation:
			// Все формы делят единственный координатный контекст.
			if v.Context == nil || v.Context != context {
				report(inst, "foreign-context", "shape does not reference the model context")
			}

		case *ExtrudedAreaSolid:
			if v.Depth <= 0 {
				report(inst, "degenerate-extrusion", fmt.Sprintf("extrusion depth %v", v.Depth))
			}

		case *RectangleProfileDef:
			if v.XDim <= 0 || v.YDim <= 0 {
				report(inst, "degenerate-extrusion", fmt.Sprintf("profile %v x %v", v.XDim, v.YDim))
			}

		case *Wall:
			if v.Placement == nil {
				report(inst, "wall-incomplete", "wall has no placement")
			}
			if v.Representation == nil {
				report(inst, "wall-incomplete", "wall has no shape representation")
			}

		case *RelAggregates:
			checkRef(inst, v.Relating, "relating object")
			for _, related := range v.Related {
				checkRef(inst, related, "related object")
			}

		case *RelContainedInSpatialStructure:
			checkRef(inst, v.Relating, "relating structure")
			for _, related := range v.Related {
				checkRef(inst, related, "related element")
			}

		case *RelAssociatesMaterial:
			checkRef(inst, v.Relating, "relating material")
			for _, related := range v.Related {
				checkRef(inst, related, "related object")
			}

		case *RelSpaceBoundary:
			if v.RelatingSpace == nil || !registered[Instance(v.RelatingSpace)] {
				report(inst, "unregistered-reference", "relating space is not registered in the model")
			}
			checkRef(inst, v.RelatedElement, "related element")
		}
	}

	if projects == 0 {
		// Нечего привязать к Project — модель без корня.
		out = append(out, Violation{Rule: "missing-project", Detail: "model has no project"})
	} else if projects > 1 {
		out = append(out, Violation{Rule: "multiple-projects", Detail: fmt.Sprintf("model has %d projects", projects)})
	}

	// Стены и помещения должны лежать на каком-то этаже, а стены —
	// иметь ассоциированный материал.
	containedElements := make(map[Instance]bool)
	wallsWithMaterial := make(map[Instance]bool)
	for _, inst := range m.instances {
		switch v := inst.(type) {
		case *RelContainedInSpatialStructure:
			for _, related := range v.Related {
				containedElements[related] = true
			}
		case *RelAssociatesMaterial:
			for _, related := range v.Related {
				wallsWithMaterial[related] = true
			}
		}
	}
	for _, wall := range m.Walls() {
		if !containedElements[Instance(wall)] {
			report(wall, "orphan-element", "wall is not contained in any storey")
		}
		if !wallsWithMaterial[Instance(wall)] {
			report(wall, "wall-unassociated-material", "wall has no material layer set usage")
		}
	}
	for _, space := range m.Spaces() {
		if !containedElements[Instance(space)] {
			report(space, "orphan-element", "space is not contained in any storey")
		}
	}

	return out
}
