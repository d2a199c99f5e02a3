package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMasterRegionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all provinces", func(mt *mtest.T) {
		repo := NewMasterRegionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.master_region", mtest.FirstBatch,
			bson.D{
				{Key: "id", Value: "35"},
				{Key: "name", Value: "JAWA TIMUR"},
				{Key: "regencies", Value: bson.A{
					bson.D{{Key: "id", Value: "3525"}, {Key: "name", Value: "KABUPATEN GRESIK"}},
					bson.D{{Key: "id", Value: "3578"}, {Key: "name", Value: "KOTA SURABAYA"}},
				}},
			}))

		provinces, err := repo.AllProvinces(context.Background())
		require.NoError(mt, err)
		require.Len(mt, provinces, 1)
		assert.Equal(mt, "JAWA TIMUR", provinces[0].Name)
		require.Len(mt, provinces[0].Regencies, 2)

		r, ok := provinces[0].FindRegency("3578")
		assert.True(mt, ok)
		assert.Equal(mt, "KOTA SURABAYA", r.Name)
	})

	mt.Run("province by id missing", func(mt *mtest.T) {
		repo := NewMasterRegionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.master_region", mtest.FirstBatch))

		_, err := repo.ProvinceByID(context.Background(), "99")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
