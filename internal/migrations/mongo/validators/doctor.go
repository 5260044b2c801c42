package validators

import "go.mongodb.org/mongo-driver/bson"

var DoctorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"specialty",
			"created_at",
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

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"specialty": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"img": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
