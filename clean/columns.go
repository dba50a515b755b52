package clean

// Field names of the input tables and the fields this package adds.
const (
	ParcelID = "parcelid"
	SetYear  = "setyear"

	Latitude  = "latitude"
	Longitude = "longitude"

	TaxDelinquencyYear = "taxdelinquencyyear"
	TaxDelinquencyFlag = "taxdelinquencyflag"
	TransactionDate    = "transactiondate"

	PoolCount   = "poolcnt"
	HotTubOrSpa = "hashottuborspa"
	PoolType    = "pooltype"
	Zipcode     = "zipcode"

	AirConditioning   = "airconditioningtypeid"
	CalculatedBath    = "calculatedbathnbr"
	FireplaceCount    = "fireplacecnt"
	FireplaceFlag     = "fireplaceflag"
	RoomCount         = "roomcnt"
	BedroomCount      = "bedroomcnt"
	BuildingQuality   = "buildingqualitytypeid"
	FinishedSqFt      = "calculatedfinishedsquarefeet"
	FullBathCount     = "fullbathcnt"
	Heating           = "heatingorsystemtypeid"
	LotSize           = "lotsizesquarefeet"
	UnitCount         = "unitcnt"
	YearBuilt         = "yearbuilt"
	Stories           = "numberofstories"
	StructureTaxValue = "structuretaxvaluedollarcnt"
	TaxValue          = "taxvaluedollarcnt"
	LandTaxValue      = "landtaxvaluedollarcnt"
	TaxAmount         = "taxamount"
)

// how boolean fields are written once cleaned
const (
	True  = "True"
	False = "False"
)

// Sparse are the columns dropped outright: each is mostly missing or duplicates another column.
var Sparse = []string{
	"architecturalstyletypeid",
	"basementsqft",
	"buildingclasstypeid",
	"decktypeid",
	"finishedfloor1squarefeet",
	"finishedsquarefeet13",
	"finishedsquarefeet15",
	"finishedsquarefeet50",
	"finishedsquarefeet6",
	"poolsizesum",
	"storytypeid",
	"typeconstructiontypeid",
	"yardbuildingsqft17",
	"yardbuildingsqft26",
	"threequarterbathnbr",
	"censustractandblock",
	"bathroomcnt",
	"finishedsquarefeet12",
}
