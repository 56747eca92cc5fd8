package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseIntentValidate(t *testing.T) {
	valid := PurchaseIntent{FullName: "Ada Obi", Email: "ada@example.com", Phone: "+2348000000000", PlanName: "🔹 Growth", Price: "$299"}

	tests := []struct {
		name   string
		mutate func(p *PurchaseIntent)
		err    error
	}{
		{name: "valid", mutate: func(p *PurchaseIntent) {}},
		{name: "no name", mutate: func(p *PurchaseIntent) { p.FullName = " " }, err: ErrFullNameRequired},
		{name: "no email", mutate: func(p *PurchaseIntent) { p.Email = "" }, err: ErrEmailRequired},
		{name: "bad email", mutate: func(p *PurchaseIntent) { p.Email = "ada.example.com" }, err: ErrInvalidEmail},
		{name: "no phone", mutate: func(p *PurchaseIntent) { p.Phone = "" }, err: ErrPhoneRequired},
		{name: "no plan", mutate: func(p *PurchaseIntent) { p.PlanName = "" }, err: ErrPlanRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			assert.Equal(t, tt.err, err)
			if err != nil {
				assert.True(t, IsValidation(err))
			}
		})
	}
}
