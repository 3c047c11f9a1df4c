package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestApplyTransfer() {
	from := suite.createTestCategory(models.Category{})
	to := suite.createTestCategory(models.Category{})
	month := types.NewMonth(2024, 7)

	_, err := models.UpsertAllocation(models.DB, from.ID, month, 5000)
	suite.Require().Nil(err)

	transfer, err := models.ApplyTransfer(models.DB, from.ID, to.ID, 5000, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(5000), transfer.Amount)
	suite.Assert().True(month.Equal(transfer.Month))
}

func (suite *TestSuiteStandard) TestApplyTransferErrors() {
	from := suite.createTestCategory(models.Category{})
	to := suite.createTestCategory(models.Category{})
	month := types.NewMonth(2024, 7)

	_, err := models.UpsertAllocation(models.DB, from.ID, month, 5000)
	suite.Require().Nil(err)

	tests := []struct {
		name   string
		from   uuid.UUID
		to     uuid.UUID
		amount int64
		err    error
	}{
		{"Zero amount", from.ID, to.ID, 0, ledger.ErrValidation},
		{"Above available", from.ID, to.ID, 5001, ledger.ErrTransferCeiling},
		{"Same category", from.ID, from.ID, 100, ledger.ErrValidation},
		{"Unknown destination", from.ID, uuid.New(), 100, models.ErrResourceNotFound},
		{"Unknown source", uuid.New(), to.ID, 100, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := models.ApplyTransfer(models.DB, tt.from, tt.to, tt.amount, month)
			suite.Assert().ErrorIs(err, tt.err)
		})
	}

	var count int64
	models.DB.Model(&models.CategoryTransfer{}).Count(&count)
	suite.Assert().Equal(int64(0), count, "failed transfers must not be stored")
}

func (suite *TestSuiteStandard) TestApplyTransferUsesMonthBalance() {
	account := suite.createTestAccount(models.Account{})
	from := suite.createTestCategory(models.Category{})
	to := suite.createTestCategory(models.Category{})

	_, err := models.UpsertAllocation(models.DB, from.ID, types.NewMonth(2024, 7), 5000)
	suite.Require().Nil(err)
	suite.spend(account.ID, from.ID, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), -4000)

	_, err = models.ApplyTransfer(models.DB, from.ID, to.ID, 1500, types.NewMonth(2024, 7))
	suite.Assert().ErrorIs(err, ledger.ErrTransferCeiling)
	suite.Assert().Equal("Move amount cannot exceed $10.00", err.Error())
}
