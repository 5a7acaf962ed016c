package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybtp.com/mybtp/utils"
)

func TestValidateEmployee(t *testing.T) {
	db := newTestDB(t)

	existing := Employee{Email: "lea.martin@mybtp.example", LastName: "Martin", UserType: UserTypeEmploye, Actif: true}
	require.NoError(t, db.Create(&existing).Error)

	equipe := Equipe{Name: "Équipe Nord"}
	require.NoError(t, db.Create(&equipe).Error)

	tests := []struct {
		name     string
		employee Employee
		wantKeys []string
	}{
		{
			name:     "valid",
			employee: Employee{Email: "marc@mybtp.example", LastName: "Leroy", UserType: UserTypeChefEquipe, EquipeId: &equipe.EquipeId},
		},
		{
			name:     "missing email",
			employee: Employee{LastName: "Leroy", UserType: UserTypeEmploye},
			wantKeys: []string{"email"},
		},
		{
			name:     "duplicate email",
			employee: Employee{Email: "lea.martin@mybtp.example", LastName: "Doublon", UserType: UserTypeEmploye},
			wantKeys: []string{"email"},
		},
		{
			name:     "unknown user type",
			employee: Employee{Email: "x@mybtp.example", LastName: "X", UserType: "Stagiaire"},
			wantKeys: []string{"user_type"},
		},
		{
			name:     "negative rates",
			employee: Employee{Email: "y@mybtp.example", LastName: "Y", UserType: UserTypeEmploye, CoutH: utils.Ptr(dec("-1")), CoutJ: utils.Ptr(dec("-8"))},
			wantKeys: []string{"cout_h", "cout_j"},
		},
		{
			name:     "unknown equipe",
			employee: Employee{Email: "z@mybtp.example", LastName: "Z", UserType: UserTypeEmploye, EquipeId: utils.Ptr(uint(999))},
			wantKeys: []string{"equipe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := ValidateEmployee(db, &tt.employee)
			require.NoError(t, err)
			assert.Len(t, errs, len(tt.wantKeys))
			for _, key := range tt.wantKeys {
				assert.Contains(t, errs, key)
			}
		})
	}
}

func TestSaveEmployeePreservesRateOnUpdate(t *testing.T) {
	db := newTestDB(t)

	employee := Employee{
		Email:    "marc@mybtp.example",
		LastName: "Leroy",
		UserType: UserTypeChefEquipe,
		CoutH:    utils.Ptr(dec("25")),
		Actif:    true,
	}
	verrs, err := SaveEmployee(db, &employee)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.NotZero(t, employee.EmployeeId)

	// a resave that tries to change the rate keeps the stored one
	update := Employee{
		EmployeeId: employee.EmployeeId,
		Email:      "marc@mybtp.example",
		FirstName:  "Marc",
		LastName:   "Leroy",
		UserType:   UserTypeChefEquipe,
		CoutH:      utils.Ptr(dec("99")),
		Actif:      true,
	}
	verrs, err = SaveEmployee(db, &update)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	stored, err := FindEmployeeByID(db, employee.EmployeeId)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Marc", stored.FirstName)
	require.NotNil(t, stored.CoutH)
	assert.True(t, stored.CoutH.Equal(dec("25")))
}

func TestSaveEmployeeUnknownID(t *testing.T) {
	db := newTestDB(t)

	verrs, err := SaveEmployee(db, &Employee{
		EmployeeId: 42,
		Email:      "ghost@mybtp.example",
		LastName:   "Ghost",
		UserType:   UserTypeEmploye,
	})
	require.NoError(t, err)
	assert.Contains(t, verrs, "user")
}
