package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		sku     string
		l, w, h float64
		weight  float64
		wantErr error
	}{
		{"合法商品", "SKU-1", 15, 7, 1, 0.2, nil},
		{"SKU为空", " ", 15, 7, 1, 0.2, ErrEmptyName},
		{"长度为0", "SKU-2", 0, 7, 1, 0.2, ErrInvalidSize},
		{"重量为负", "SKU-3", 15, 7, 1, -1, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct("手机壳", tt.sku, 1, tt.l, tt.w, tt.h, tt.weight, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SKU-1", p.SKU)
		})
	}
}

func TestProduct_Volume(t *testing.T) {
	p := &Product{Length: 15, Width: 7, Height: 1}
	assert.Equal(t, 105.0, p.Volume())

	// 0.1*0.2*0.3在float64下不是0.006,decimal计算后再转换则是最接近的float64
	small := &Product{Length: 0.1, Width: 0.2, Height: 0.3}
	assert.Equal(t, 0.006, small.Volume())
}

func TestProduct_UpdateInfo(t *testing.T) {
	p := &Product{Name: "旧名称", CategoryID: 1, ImageURL: "a.png", Length: 1, Width: 2, Height: 3}

	p.UpdateInfo("", 0, "")
	assert.Equal(t, "旧名称", p.Name)
	assert.Equal(t, uint(1), p.CategoryID)

	p.UpdateInfo("新名称", 2, "b.png")
	assert.Equal(t, "新名称", p.Name)
	assert.Equal(t, uint(2), p.CategoryID)
	assert.Equal(t, "b.png", p.ImageURL)
	assert.Equal(t, 6.0, p.Volume())
}
