package models_test

import (
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMatchRulePatternRequired() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.MatchRule{CategoryID: category.ID, Pattern: "  "}).Error
	suite.Assert().ErrorIs(err, models.ErrMatchRulePatternEmpty)
}

func (suite *TestSuiteStandard) TestLedgerMatchRulesOrdered() {
	category := suite.createTestCategory(models.Category{})

	for _, r := range []models.MatchRule{
		{CategoryID: category.ID, Pattern: "*Market*", Priority: 5},
		{CategoryID: category.ID, Pattern: "Coffee*", Priority: 1},
	} {
		suite.Require().Nil(models.DB.Create(&r).Error)
	}

	rules, err := models.LedgerMatchRules(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rules, 2)
	suite.Assert().Equal("Coffee*", rules[0].Pattern)
	suite.Assert().Equal("*Market*", rules[1].Pattern)
}
