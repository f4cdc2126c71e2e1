package suggest

import "field-mapper/internal/schema"

func customerTable() *schema.Schema {
	length := 200

	return schema.MustNew("dbo.Customer", schema.OriginParsedScript, []schema.Column{
		{Name: "CustomerID", Type: "int", PrimaryIdentifier: true, Required: true},
		{Name: "FullName", Type: "nvarchar", Length: &length},
		{Name: "Email", Type: "nvarchar", Nullable: true},
		{Name: "CreatedDate", Type: "datetime"},
	})
}

func accountEntity() *schema.Schema {
	return schema.MustNew("account", schema.OriginPlatformExport, []schema.Column{
		{Name: "accountid", Type: "uniqueidentifier", PrimaryIdentifier: true},
		{Name: "name", Type: "nvarchar", PrimaryDisplayName: true},
		{Name: "emailaddress1", Type: "nvarchar"},
		{Name: "createdon", Type: "datetime"},
		{Name: "statecode", Type: "state"},
		{Name: "msdyn_segment", Type: "lookup"},
	})
}
