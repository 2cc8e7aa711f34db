package usecases

import "fmt"

// User-facing messages returned as message tables.
const (
	MsgNoSearchResults    = "No results found matching your criteria."
	MsgNoCoverage         = "No coverage data found matching your criteria."
	MsgNoAliasCollisions  = "No alias collisions found."
	MsgAliasTableMissing  = "brand_alias table not found."
	MsgAliasTableHint     = "Please run extend_schema.sql to create the brand_alias table."
	MsgNoMissingMPN       = "No listings with missing MPN found."
	MsgNoOEMMismatches    = "No OEM descriptor mismatches found."
	MsgSelectTable        = "Please select a table or view"
	MsgEnterAliasText     = "Please enter some text to analyze."
	MsgNoTokens           = "No valid tokens found in the input text."
	MsgNoAliasesForTokens = "No aliases found in BRAND_ALIAS for any of the words in your text."
	MsgTooManyTokens      = "Too many distinct words (%d); at most %d can be looked up at once."
)

const msgNoListings = `⚠️ NO LISTINGS FOUND IN DATABASE

The LISTING table is empty. You need to populate it with data first.

To fix this:
1. Run the seed script: sql/web_demo_seed.sql (or your data loading script)
2. Make sure listings include trim_id, drive_id, and position_id values
3. The trim_id links listings to makes/models through the trim table`

const msgTrimHint = `

⚠️ IMPORTANT: Listings must have a trim_id set to appear when filtering by Make/Model.

This is because the view joins through the trim table to get make/model information.
If listings don't have trim_id values, they won't match make/model filters.

To fix this:
1. Check the Schema Peek tab → LISTING table to see if trim_id values are set
2. Update listings to include trim_id values that link to the correct trim
3. Or search without Make/Model filters to see all listings`

const msgRemoveFilters = `

Try removing some filters or checking if data exists in the database.`

func msgTableNotFound(name string) string {
	return fmt.Sprintf("Table/view '%s' not found in project schema", name)
}

func msgTableEmpty(name string) string {
	return fmt.Sprintf("Table/view '%s' is empty or has no rows.", name)
}
