package model

// BusinessType classifies the professional's legal form.
type BusinessType string

const (
	BusinessMEI        BusinessType = "MEI"
	BusinessEPP        BusinessType = "EPP"
	BusinessIndividual BusinessType = "Individual"
)

// FiscalRegime is the tax regime the professional operates under.
type FiscalRegime string

const (
	RegimeMEI             FiscalRegime = "MEI"
	RegimeSimplesNacional FiscalRegime = "Simples Nacional"
	RegimeLucroPresumido  FiscalRegime = "Lucro Presumido"
	RegimeLucroReal       FiscalRegime = "Lucro Real"
)

// User is the single logged-in professional. At most one live instance
// exists at a time; it is created on login/register and dropped on logout.
type User struct {
	ID           string
	Name         string
	Email        string
	TaxID        string
	BusinessType BusinessType
	FiscalRegime FiscalRegime
}
