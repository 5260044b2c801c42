package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"patient",
					"admin",
				},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
