package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/normalize"
)

// PoIReader provides read-only access to stored records.
// Implemented by pois.Repository.
type PoIReader interface {
	Lookup(id string) (*entities.PointOfInterest, error)
	List(category string) ([]entities.PointOfInterest, error)
	Search(query string) ([]entities.PointOfInterest, error)
}

type PoIController struct {
	reader PoIReader
}

func NewPoIController(reader PoIReader) *PoIController {
	return &PoIController{
		reader: reader,
	}
}

// List returns stored records, filtered by ?category= and/or matched
// against ?q= (name or external id substring).
func (controller *PoIController) List(c *gin.Context) {
	var (
		records []entities.PointOfInterest
		err     error
	)

	if query := c.Query("q"); query != "" {
		records, err = controller.reader.Search(query)
	} else {
		records, err = controller.reader.List(normalize.NormalizeCategory(c.Query("category")))
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"pois": records, "count": len(records)})
}

// Lookup resolves one record by internal or external id.
func (controller *PoIController) Lookup(c *gin.Context) {
	poi, err := controller.reader.Lookup(c.Param("id"))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "poi not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, poi)
}
