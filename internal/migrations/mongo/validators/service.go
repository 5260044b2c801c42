package validators

import "go.mongodb.org/mongo-driver/bson"

var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"slots",
			"price",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"slots": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 60,
				},
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},
		},
	},
}
