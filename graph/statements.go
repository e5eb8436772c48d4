package graph

// Parameterized upsert statements. Every write goes through one of these;
// nothing is ever interpolated into query text.
const (
	stmtUpsertProducts = `
UNWIND $products AS product
MERGE (p:Product {id: product.id})
SET p.name = product.name, p.description = product.description, p.price = product.price`

	stmtUpsertCategory = `
MERGE (c:Category {name: $name})`

	stmtRelateCategory = `
MATCH (p:Product {id: $product_id}), (c:Category {name: $category_name})
MERGE (p)-[:BELONGS_TO]->(c)`

	stmtUpsertSpecification = `
MERGE (s:Specification {key: $key, value: $value})`

	stmtRelateSpecification = `
MATCH (p:Product {id: $product_id}), (s:Specification {key: $spec_key, value: $spec_value})
MERGE (p)-[:HAS_SPECIFICATION]->(s)`
)
