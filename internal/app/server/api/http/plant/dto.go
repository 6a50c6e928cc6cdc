package plant

import (
	"solarkeeper/internal/domain/importer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

type fetchInput struct {
	Body FetchRequest
}

type FetchRequest struct {
	ManufacturerID int `json:"fabricante_id" doc:"ID do fabricante cujas plantas serão listadas" minimum:"1"`
}

type fetchOutput struct {
	Body []vendorapi.ExternalPlant
}

type importInput struct {
	Body ImportRequest
}

type ImportRequest struct {
	Plants []importer.Selection `json:"plantas" doc:"Plantas selecionadas para importação" minItems:"1"`
}

type importOutput struct {
	Body ImportResponse
}

type ImportResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    []importer.ImportedPlant `json:"data"`
}

type listOutput struct {
	Body []plant.Plant
}
