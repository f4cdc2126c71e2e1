package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"field-mapper/internal/schema"
)

func TestPriority_Ordering(t *testing.T) {
	custom := Column(nil, schema.Column{Name: "accountnumber"})
	created := Column(nil, schema.Column{Name: "createdon"})
	author := Column(nil, schema.Column{Name: "createdby"})
	state := Column(nil, schema.Column{Name: "statecode"})
	owner := Column(nil, schema.Column{Name: "ownerid"})
	version := Column(nil, schema.Column{Name: "versionnumber"})
	vendor := Column(nil, schema.Column{Name: "msdyn_thing"})

	ranks := []int{
		Priority(custom),
		Priority(created),
		Priority(author),
		Priority(state),
		Priority(owner),
		Priority(version),
		Priority(vendor),
	}

	assert.Equal(t, PriorityCustom, ranks[0])
	assert.Equal(t, PriorityOther, ranks[len(ranks)-1])
	assert.IsIncreasing(t, ranks)
}

func TestPriority_UnclassifiedIsCustom(t *testing.T) {
	assert.Equal(t, PriorityCustom, Priority(schema.Column{Name: "createdon"}))
}

func TestCategoryPriority_Total(t *testing.T) {
	for _, cat := range schema.Categories() {
		p := CategoryPriority(cat)
		assert.Greater(t, p, PriorityCustom, cat.String())
		assert.LessOrEqual(t, p, PriorityOther, cat.String())
	}
}
