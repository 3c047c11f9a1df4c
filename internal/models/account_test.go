package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	account := suite.createTestAccount(models.Account{Name: "\t Checking  "})
	suite.Assert().Equal("Checking", account.Name)
}

func (suite *TestSuiteStandard) TestAccountNameUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})

	err := models.DB.Create(&models.Account{Name: "Checking", Type: models.AccountTypeCash}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountTypeInvalid() {
	err := models.DB.Create(&models.Account{Name: "Broken", Type: 7}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountTypeInvalid)
}

func (suite *TestSuiteStandard) TestAccountDeleteCascadesTransactions() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	transaction := suite.createTestTransaction(ledger.Transaction{
		AccountID: account.ID,
		Date:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Amount:    -1500,
		Splits:    []ledger.Split{{CategoryID: category.ID, Amount: -1500, Type: ledger.SplitTypeUser}},
	})

	err := models.DB.Delete(&account).Error
	suite.Require().Nil(err)

	var count int64
	models.DB.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Count(&count)
	suite.Assert().Equal(int64(0), count)

	models.DB.Model(&models.Split{}).Where("transaction_id = ?", transaction.ID).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCategoryInUseCannotBeDeleted() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestTransaction(ledger.Transaction{
		AccountID: account.ID,
		Amount:    200,
		Splits:    []ledger.Split{{ID: uuid.New(), CategoryID: category.ID, Amount: 200, Type: ledger.SplitTypeUser}},
	})

	err := models.DB.Delete(&category).Error
	suite.Assert().ErrorIs(err, models.ErrResourceInUse)
}

func (suite *TestSuiteStandard) TestUserFirstNameRequired() {
	err := models.DB.Create(&models.User{FirstName: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrUserFirstNameEmpty)
}

func (suite *TestSuiteStandard) TestPayeeByName() {
	first, err := models.PayeeByName(models.DB, " Corner Store ")
	suite.Require().Nil(err)
	suite.Assert().Equal("Corner Store", first.Name)

	second, err := models.PayeeByName(models.DB, "Corner Store")
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID)
}
