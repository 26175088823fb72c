package endpoints

import (
	"github.com/inkroomhq/inkroom/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Book endpoints
		&GetBookEndpoint{},
		&UpdateBookEndpoint{},
		&SaveStateEndpoint{},

		// Section endpoints
		&ListSectionsEndpoint{},
		&AddSectionEndpoint{},
		&ReorderSectionsEndpoint{},
		&ActiveSectionEndpoint{},
		&ActivateSectionEndpoint{},
		&UpdateActiveSectionEndpoint{},
		&InsertTextEndpoint{},
		&ApplyTOCEndpoint{},

		// Image endpoints
		&AttachImageEndpoint{},
		&ResizeImageEndpoint{},
		&DeleteImageEndpoint{},

		// Assist endpoints
		&SuggestTOCEndpoint{},
		&SuggestionsEndpoint{},
		&VocabularyEndpoint{},

		// Call log endpoints
		&ListCallsEndpoint{},
		&GetCallEndpoint{},
	}
}
