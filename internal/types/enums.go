package types

import "fmt"

// Closed enums for fields the intake forms historically sent as free strings.
// Unknown values are rejected at the boundary instead of being stored.

type AssetCategory string

const (
	CategoryAnnuityNonQualified AssetCategory = "ANNUITY_NON_QUALIFIED"
	CategoryAnnuityQualified    AssetCategory = "ANNUITY_QUALIFIED"
	CategoryBonds               AssetCategory = "BONDS"
	CategoryBrokerageAccount    AssetCategory = "BROKERAGE_ACCOUNT"
	CategoryBusiness            AssetCategory = "BUSINESS"
	CategoryCash                AssetCategory = "CASH"
	CategoryCollectible         AssetCategory = "COLLECTIBLE"
	CategoryCryptocurrency      AssetCategory = "CRYPTOCURRENCY"
	CategoryDepositAccount      AssetCategory = "DEPOSIT_ACCOUNT"
	CategoryEstateAccount       AssetCategory = "ESTATE_ACCOUNT"
	CategoryJewelry             AssetCategory = "JEWELRY"
	CategoryLifeInsurance       AssetCategory = "LIFE_INSURANCE"
	CategoryLoan                AssetCategory = "LOAN"
	CategoryOther               AssetCategory = "OTHER"
	CategoryPreciousMetal       AssetCategory = "PRECIOUS_METAL"
	CategoryRealEstate          AssetCategory = "REAL_ESTATE"
	CategoryRefund              AssetCategory = "REFUND"
	CategoryRetirement          AssetCategory = "RETIREMENT"
	CategoryStocks              AssetCategory = "STOCKS"
	CategoryTrust               AssetCategory = "TRUST"
	CategoryVehicle             AssetCategory = "VEHICLE"
)

var assetCategories = map[AssetCategory]struct{}{
	CategoryAnnuityNonQualified: {},
	CategoryAnnuityQualified:    {},
	CategoryBonds:               {},
	CategoryBrokerageAccount:    {},
	CategoryBusiness:            {},
	CategoryCash:                {},
	CategoryCollectible:         {},
	CategoryCryptocurrency:      {},
	CategoryDepositAccount:      {},
	CategoryEstateAccount:       {},
	CategoryJewelry:             {},
	CategoryLifeInsurance:       {},
	CategoryLoan:                {},
	CategoryOther:               {},
	CategoryPreciousMetal:       {},
	CategoryRealEstate:          {},
	CategoryRefund:              {},
	CategoryRetirement:          {},
	CategoryStocks:              {},
	CategoryTrust:               {},
	CategoryVehicle:             {},
}

func (c AssetCategory) Valid() bool {
	_, ok := assetCategories[c]
	return ok
}

func ParseAssetCategory(s string) (AssetCategory, error) {
	c := AssetCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid asset category %q", s)
	}
	return c, nil
}

type AccountStatus string

const (
	AccountStatusOpen        AccountStatus = "OPEN"
	AccountStatusClosed      AccountStatus = "CLOSED"
	AccountStatusTransferred AccountStatus = "TRANSFERRED"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusOpen, AccountStatusClosed, AccountStatusTransferred:
		return true
	}
	return false
}

func ParseAccountStatus(s string) (AccountStatus, error) {
	st := AccountStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid account status %q", s)
	}
	return st, nil
}

type AccountPlan string

const (
	AccountPlanIndividual     AccountPlan = "INDIVIDUAL"
	AccountPlanJoint          AccountPlan = "JOINT"
	AccountPlanPayableOnDeath AccountPlan = "PAYABLE_ON_DEATH"
	AccountPlanTransferred    AccountPlan = "TRANSFERRED"
)

func (p AccountPlan) Valid() bool {
	switch p {
	case AccountPlanIndividual, AccountPlanJoint, AccountPlanPayableOnDeath, AccountPlanTransferred:
		return true
	}
	return false
}

func ParseAccountPlan(s string) (AccountPlan, error) {
	p := AccountPlan(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid account plan %q", s)
	}
	return p, nil
}

type LiabilityCategory string

const (
	LiabilityMortgage   LiabilityCategory = "MORTGAGE"
	LiabilityLoan       LiabilityCategory = "LOAN"
	LiabilityCreditCard LiabilityCategory = "CREDIT_CARD"
	LiabilityMedical    LiabilityCategory = "MEDICAL"
	LiabilityTaxes      LiabilityCategory = "TAXES"
	LiabilityUtilities  LiabilityCategory = "UTILITIES"
	LiabilityOther      LiabilityCategory = "OTHER"
)

func (c LiabilityCategory) Valid() bool {
	switch c {
	case LiabilityMortgage, LiabilityLoan, LiabilityCreditCard, LiabilityMedical, LiabilityTaxes, LiabilityUtilities, LiabilityOther:
		return true
	}
	return false
}

func ParseLiabilityCategory(s string) (LiabilityCategory, error) {
	c := LiabilityCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid liability category %q", s)
	}
	return c, nil
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskComplete   TaskStatus = "COMPLETE"
	TaskPending    TaskStatus = "PENDING"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskComplete, TaskPending:
		return true
	}
	return false
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid task status %q", s)
	}
	return st, nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid task priority %q", s)
	}
	return p, nil
}
