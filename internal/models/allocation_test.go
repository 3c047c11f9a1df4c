package models_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestUpsertAllocationIdempotent() {
	category := suite.createTestCategory(models.Category{})
	month := types.NewMonth(2024, 5)

	first, err := models.UpsertAllocation(models.DB, category.ID, month, 15000)
	suite.Require().Nil(err)

	second, err := models.UpsertAllocation(models.DB, category.ID, month, 15000)
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID)

	var count int64
	models.DB.Model(&models.Allocation{}).Where("category_id = ?", category.ID).Count(&count)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestUpsertAllocationUpdatesAmount() {
	category := suite.createTestCategory(models.Category{})
	month := types.NewMonth(2024, 5)

	_, err := models.UpsertAllocation(models.DB, category.ID, month, 15000)
	suite.Require().Nil(err)

	updated, err := models.UpsertAllocation(models.DB, category.ID, month, 9000)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(9000), updated.Amount)

	stored, err := models.AllocationFor(models.DB, category.ID, month)
	suite.Require().Nil(err)
	suite.Require().NotNil(stored)
	suite.Assert().Equal(int64(9000), stored.Amount)
}

func (suite *TestSuiteStandard) TestAllocationForMissingMonth() {
	category := suite.createTestCategory(models.Category{})

	_, err := models.UpsertAllocation(models.DB, category.ID, types.NewMonth(2024, 5), 15000)
	suite.Require().Nil(err)

	stored, err := models.AllocationFor(models.DB, category.ID, types.NewMonth(2024, 6))
	suite.Require().Nil(err)
	suite.Assert().Nil(stored)
}

func (suite *TestSuiteStandard) TestAllocationUnknownCategory() {
	category := suite.createTestCategory(models.Category{})
	suite.Require().Nil(models.DB.Delete(&category).Error)

	_, err := models.UpsertAllocation(models.DB, category.ID, types.NewMonth(2024, 5), 100)
	suite.Assert().ErrorIs(err, models.ErrReferenceNotFound)
}
