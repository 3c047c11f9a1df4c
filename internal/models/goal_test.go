package models_test

import (
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestGoalValidatedOnSave() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.Goal{CategoryID: category.ID, Type: ledger.GoalTypeBuilder, Amount: 0}).Error
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	day := 9
	err = models.DB.Create(&models.Goal{CategoryID: category.ID, Type: ledger.GoalTypeSpending, Amount: 100, RepeatDayWeek: &day}).Error
	suite.Assert().ErrorIs(err, ledger.ErrValidation)
}

func (suite *TestSuiteStandard) TestGoalUniquePerCategory() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestGoal(models.Goal{CategoryID: category.ID, Type: ledger.GoalTypeBuilder, Amount: 5000})

	err := models.DB.Create(&models.Goal{CategoryID: category.ID, Type: ledger.GoalTypeBuilder, Amount: 7000}).Error
	suite.Assert().ErrorIs(err, models.ErrGoalCategoryNotUnique)
}

func (suite *TestSuiteStandard) TestGoalDeletedWithCategory() {
	category := suite.createTestCategory(models.Category{})
	goal := suite.createTestGoal(models.Goal{CategoryID: category.ID, Type: ledger.GoalTypeBuilder, Amount: 5000})

	suite.Require().Nil(models.DB.Delete(&category).Error)

	err := models.DB.First(&models.Goal{}, goal.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestGoalLedger() {
	day := 15
	goal := models.Goal{Type: ledger.GoalTypeBuilder, Amount: 2500, RepeatDayMonth: &day}

	suite.Assert().Equal(&ledger.Goal{Type: ledger.GoalTypeBuilder, Amount: 2500, RepeatDayMonth: &day}, goal.Ledger())
}
