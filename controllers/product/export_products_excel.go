package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/velmart/ecommerce-api/store"
)

// ExportProductsToExcel streams the full catalog as an xlsx workbook.
// Admin only.
func ExportProductsToExcel(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.AllProducts()
		if err != nil {
			internalError(c, "Failed to fetch products", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			internalError(c, "Failed to create Excel sheet", err)
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Price", "Stock",
			"ImageURL", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			internalError(c, "Failed to write Excel file", err)
			return
		}
	}
}
